package views

import (
	"context"
	"fmt"

	"assetdesk/cli/internal/assets"
	"assetdesk/cli/internal/assigned"
	"assetdesk/cli/internal/billing"
	"assetdesk/cli/internal/guard/engine"
	identitydomain "assetdesk/cli/internal/identity/domain"
	"assetdesk/cli/internal/notices"
	"assetdesk/cli/internal/requests"
)

// RequestAssets is the employee dashboard index: the browsable asset catalog
// with client-side search and type filter.
func (a *App) RequestAssets(ctx context.Context, search string, productType assets.ProductType) error {
	return a.runGuarded(ctx, "/dashboard/employee", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		list, err := a.Assets.List(ctx)
		if err != nil {
			return err
		}
		list = assets.Filter(list, search, productType)
		if len(list) == 0 {
			fmt.Fprintln(a.Out, "No assets found.")
			return nil
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tAVAILABLE")
		for _, item := range list {
			avail := fmt.Sprintf("%d", item.AvailableQuantity)
			if !item.Available() {
				avail = "out of stock"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.ProductName, item.ProductType, avail)
		}
		return w.Flush()
	})
}

// RequestAsset files a request for one asset with an optional note.
func (a *App) RequestAsset(ctx context.Context, assetID, note string) error {
	return a.runGuarded(ctx, "/dashboard/employee/request", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		if err := a.Requests.Create(ctx, assetID, note); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Asset requested successfully.")
		return nil
	})
}

// MyAssets lists the caller's assignments with client-side filters.
func (a *App) MyAssets(ctx context.Context, search, assetType, status string) error {
	return a.runGuarded(ctx, "/my-assets", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		items, err := a.Assigned.List(ctx, a.AssignedLimit)
		if err != nil {
			return err
		}
		items = assigned.Filter(items, search, assetType, status)
		if len(items) == 0 {
			fmt.Fprintln(a.Out, "No assets found.")
			return nil
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tASSET\tTYPE\tCOMPANY\tSTATUS")
		for _, it := range items {
			status := it.Status
			if status == "" {
				status = "assigned"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.AssetName, it.AssetType, it.CompanyName, status)
		}
		return w.Flush()
	})
}

// ReturnAsset hands an assigned asset back.
func (a *App) ReturnAsset(ctx context.Context, id string) error {
	return a.runGuarded(ctx, "/my-assets", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		items, err := a.Assigned.List(ctx, a.AssignedLimit)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ID == id {
				if err := a.Assigned.Return(ctx, it); err != nil {
					return err
				}
				fmt.Fprintln(a.Out, "Asset returned.")
				return nil
			}
		}
		return fmt.Errorf("views: no assigned asset with id %s", id)
	})
}

// MyTeam shows the roster of one affiliated company; with an empty company
// the first affiliation is used, as the team screen does.
func (a *App) MyTeam(ctx context.Context, companyName string) error {
	return a.runGuarded(ctx, "/my-team", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		affs, err := a.Team.Affiliations(ctx)
		if err != nil {
			return err
		}
		if len(affs) == 0 {
			fmt.Fprintln(a.Out, "You are not affiliated with any company yet.")
			return nil
		}
		if companyName == "" {
			companyName = affs[0].CompanyName
		}
		members, err := a.Team.TeamByCompany(ctx, companyName)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Team at %s:\n", companyName)
		w := a.table()
		fmt.Fprintln(w, "NAME\tEMAIL\tROLE")
		for _, m := range members {
			role := "Team Member"
			if m.Role == string(identitydomain.RoleHR) {
				role = "HR Manager"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.DisplayName(), m.DisplayEmail(), role)
		}
		return w.Flush()
	})
}

// NoticeBoard lists the notices visible to the caller. The same screen backs
// the HR and employee notice routes; access only needs authentication.
func (a *App) NoticeBoard(ctx context.Context) error {
	return a.runGuarded(ctx, "/dashboard/employee/notices", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		list, err := a.Notices.List(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(a.Out, "No notices.")
			return nil
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tPRIORITY\tTITLE\tREAD")
		for _, n := range list {
			read := ""
			if n.Read {
				read = "read"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Priority, n.Title, read)
		}
		return w.Flush()
	})
}

// MarkNoticeRead flags one notice as read.
func (a *App) MarkNoticeRead(ctx context.Context, id string) error {
	return a.runGuarded(ctx, "/dashboard/employee/notices", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		if err := a.Notices.MarkRead(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Notice marked read.")
		return nil
	})
}

// Profile shows the caller's own record.
func (a *App) Profile(ctx context.Context) error {
	return a.runGuarded(ctx, "/profile", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		snap := a.Session.Snapshot()
		id := snap.Identity
		fmt.Fprintf(a.Out, "Name:     %s\n", id.Name)
		fmt.Fprintf(a.Out, "Email:    %s\n", id.Email)
		fmt.Fprintf(a.Out, "Role:     %s\n", id.Role)
		if id.CompanyName != "" {
			fmt.Fprintf(a.Out, "Company:  %s\n", id.CompanyName)
		}
		if id.Role == identitydomain.RoleHR {
			fmt.Fprintf(a.Out, "Package:  %d employees\n", id.PackageLimit)
		}
		return nil
	})
}

// UpdateProfile patches the caller's record and shows the merged result
// immediately; the next refresh reconciles with the backend.
func (a *App) UpdateProfile(ctx context.Context, patch identitydomain.Patch) error {
	return a.runGuarded(ctx, "/profile", engine.CapabilityAuthenticated, func(ctx context.Context) error {
		if err := a.Session.UpdateProfile(ctx, patch); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Profile updated.")
		return nil
	})
}

// AssetList is the HR dashboard index: the inventory with summary stats.
func (a *App) AssetList(ctx context.Context) error {
	return a.runGuarded(ctx, "/dashboard/hr", engine.CapabilityHR, func(ctx context.Context) error {
		list, err := a.Assets.List(ctx)
		if err != nil {
			return err
		}
		reqs, err := a.Requests.ListHR(ctx)
		if err != nil {
			return err
		}
		var totalStock, available, pending int
		for _, item := range list {
			totalStock += item.ProductQuantity
			available += item.AvailableQuantity
		}
		for _, r := range reqs {
			if r.Pending() {
				pending++
			}
		}
		fmt.Fprintf(a.Out, "Total assets: %d  Total stock: %d  Available: %d  Pending requests: %d\n\n",
			len(list), totalStock, available, pending)
		w := a.table()
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTOCK\tAVAILABLE\tADDED")
		for _, item := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				item.ID, item.ProductName, item.ProductType, item.ProductQuantity, item.AvailableQuantity, shortDate(item.DateAdded))
		}
		return w.Flush()
	})
}

// AddAsset registers a new asset.
func (a *App) AddAsset(ctx context.Context, n assets.NewAsset) error {
	return a.runGuarded(ctx, "/dashboard/hr/add-asset", engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Assets.Add(ctx, n); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Asset %q added.\n", n.ProductName)
		return nil
	})
}

// EditAsset replaces an asset's editable fields.
func (a *App) EditAsset(ctx context.Context, id string, n assets.NewAsset) error {
	route := fmt.Sprintf("/dashboard/hr/assets/%s/edit", id)
	return a.runGuarded(ctx, route, engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Assets.Update(ctx, id, n); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Asset updated.")
		return nil
	})
}

// DeleteAsset removes an asset from the inventory.
func (a *App) DeleteAsset(ctx context.Context, id string) error {
	return a.runGuarded(ctx, "/dashboard/hr", engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Assets.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Asset deleted.")
		return nil
	})
}

// AllRequests lists the company's requests, optionally filtered by status.
func (a *App) AllRequests(ctx context.Context, status requests.Status) error {
	return a.runGuarded(ctx, "/dashboard/hr/requests", engine.CapabilityHR, func(ctx context.Context) error {
		list, err := a.Requests.ListHR(ctx)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tREQUESTER\tASSET\tTYPE\tDATE\tSTATUS\tNOTE")
		shown := 0
		for _, r := range list {
			if status != "" && r.Status != status {
				continue
			}
			shown++
			fmt.Fprintf(w, "%s\t%s <%s>\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.RequesterName, r.RequesterEmail, r.AssetName, r.AssetType, shortDate(r.RequestDate), r.Status, r.Note)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if shown == 0 {
			fmt.Fprintln(a.Out, "No requests found.")
		}
		return nil
	})
}

// ApproveRequest grants a pending request.
func (a *App) ApproveRequest(ctx context.Context, id string) error {
	return a.runGuarded(ctx, "/dashboard/hr/requests", engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Requests.Approve(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Request approved.")
		return nil
	})
}

// RejectRequest declines a pending request.
func (a *App) RejectRequest(ctx context.Context, id string) error {
	return a.runGuarded(ctx, "/dashboard/hr/requests", engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Requests.Reject(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Request rejected.")
		return nil
	})
}

// EmployeeList shows the HR manager's roster against the package limit.
func (a *App) EmployeeList(ctx context.Context) error {
	return a.runGuarded(ctx, "/dashboard/hr/employees", engine.CapabilityHR, func(ctx context.Context) error {
		members, err := a.Team.Employees(ctx)
		if err != nil {
			return err
		}
		snap := a.Session.Snapshot()
		if snap.Identity != nil {
			fmt.Fprintf(a.Out, "%d of %d employee slots used.\n\n", len(members), snap.Identity.PackageLimit)
		}
		w := a.table()
		fmt.Fprintln(w, "NAME\tEMAIL")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s\n", m.DisplayName(), m.DisplayEmail())
		}
		return w.Flush()
	})
}

// PostNotice publishes an announcement.
func (a *App) PostNotice(ctx context.Context, n notices.NewNotice) error {
	return a.runGuarded(ctx, "/dashboard/hr/notices", engine.CapabilityHR, func(ctx context.Context) error {
		if err := a.Notices.Post(ctx, n); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Notice %q posted.\n", n.Title)
		return nil
	})
}

// Upgrade starts a checkout for a subscription tier and prints the hosted
// checkout URL for the user to open.
func (a *App) Upgrade(ctx context.Context, packageID string) error {
	return a.runGuarded(ctx, "/upgrade", engine.CapabilityHR, func(ctx context.Context) error {
		pkg, ok := billing.PackageByID(packageID)
		if !ok {
			return fmt.Errorf("views: unknown package %q (try basic, standard, or premium)", packageID)
		}
		cs, err := a.Billing.CreateSession(ctx, pkg)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Open this URL to pay for the %s package ($%d/month, %d employees):\n%s\n",
			pkg.Name, pkg.PriceUSD, pkg.EmployeeLimit, cs.URL)
		fmt.Fprintf(a.Out, "Afterwards run: assetdesk payment-success -package %s -session %s\n", pkg.ID, cs.SessionID)
		return nil
	})
}

// PaymentSuccess confirms a finished checkout and refreshes the identity so
// the raised package limit is visible immediately.
func (a *App) PaymentSuccess(ctx context.Context, packageID, transactionID string) error {
	return a.runGuarded(ctx, "/payment-success", engine.CapabilityHR, func(ctx context.Context) error {
		pkg, ok := billing.PackageByID(packageID)
		if !ok {
			return fmt.Errorf("views: unknown package %q", packageID)
		}
		if err := a.Billing.ConfirmPayment(ctx, pkg, transactionID); err != nil {
			return err
		}
		if err := a.Session.Refresh(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Your package has been upgraded successfully.")
		return nil
	})
}

// AnalyticsScreen shows asset distribution and the most requested assets.
func (a *App) AnalyticsScreen(ctx context.Context) error {
	return a.runGuarded(ctx, "/analytics", engine.CapabilityHR, func(ctx context.Context) error {
		dist, err := a.Analytics.AssetsDistribution(ctx)
		if err != nil {
			return err
		}
		top, err := a.Analytics.TopRequested(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "Assets by type:")
		w := a.table()
		for _, d := range dist {
			fmt.Fprintf(w, "  %s\t%d\n", d.Name, d.Value)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, "\nTop requested:")
		w = a.table()
		for _, tr := range top {
			fmt.Fprintf(w, "  %s\t%d\n", tr.Name, tr.Count)
		}
		return w.Flush()
	})
}
