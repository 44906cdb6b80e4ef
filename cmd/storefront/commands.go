package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/verdantleaf/storefront/internal/address"
	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/cart"
	"github.com/verdantleaf/storefront/internal/checkout"
	"github.com/verdantleaf/storefront/internal/session"
	"github.com/verdantleaf/storefront/pkg/errors"
	"github.com/verdantleaf/storefront/pkg/money"
)

func dispatch(ctx context.Context, a *app, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, a, args)
	case "logout":
		return runLogout(ctx, a, args)
	case "whoami":
		return runWhoami(a)
	case "register":
		return runRegister(ctx, a, args)
	case "verify-email":
		return runVerifyEmail(ctx, a, args)
	case "forgot-password":
		return runForgotPassword(ctx, a, args)
	case "reset-password":
		return runResetPassword(ctx, a, args)
	case "products":
		return runProducts(ctx, a, args)
	case "product":
		return runProduct(ctx, a, args)
	case "categories":
		return runCategories(ctx, a)
	case "cart":
		return runCart(ctx, a, args)
	case "addresses":
		return runAddresses(ctx, a, args)
	case "checkout":
		return runCheckout(ctx, a, args)
	case "orders":
		return runOrders(ctx, a, args)
	case "wishlist":
		return runWishlist(ctx, a, args)
	case "referrals":
		return runReferrals(ctx, a)
	case "wallet":
		return runWallet(ctx, a)
	case "admin":
		return runAdmin(ctx, a, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// friendlyMessage prefers the typed user-facing text over raw error chains.
func friendlyMessage(err error) string {
	if typed := errors.As(err); typed != nil {
		return typed.UserMessage()
	}
	return err.Error()
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	remember := fs.Bool("remember", false, "keep the session longer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	resp, err := a.client.Login(ctx, api.LoginInput{Email: *email, Password: *password, RememberMe: *remember})
	if err != nil {
		return err
	}
	a.session.LoginUser(ctx, resp.Token, resp.User)

	// Server cart supersedes whatever was built anonymously.
	if err := a.syncer.Refresh(ctx); err != nil {
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "cart refresh after login failed")
	}

	fmt.Printf("signed in as %s %s <%s>\n", resp.User.FirstName, resp.User.LastName, resp.User.Email)
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	admin := fs.Bool("admin", false, "sign out the admin session instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	identity := session.IdentityUser
	if *admin {
		identity = session.IdentityAdmin
	}
	a.session.Logout(ctx, identity)
	fmt.Printf("signed out %s session\n", identity)
	return nil
}

func runWhoami(a *app) error {
	if user, ok := a.session.CurrentUser(); ok {
		fmt.Printf("user:  %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		if claims, err := session.PeekClaims(a.session.Token(api.NamespaceUser)); err == nil && !claims.ExpiresAt.IsZero() {
			fmt.Printf("       token expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
		}
	} else {
		fmt.Println("user:  anonymous")
	}
	if admin, ok := a.session.CurrentAdmin(); ok {
		fmt.Printf("admin: %s (%s)\n", admin.Username, admin.Role)
	} else {
		fmt.Println("admin: not signed in")
	}
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first-name", "", "first name")
	last := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	referral := fs.String("referral", "", "referral code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("register requires -email and -password")
	}

	if *referral != "" {
		if _, err := a.client.ValidateReferral(ctx, *referral); err != nil {
			return err
		}
	}

	resp, err := a.client.Register(ctx, api.RegisterInput{
		Email:        *email,
		Password:     *password,
		FirstName:    *first,
		LastName:     *last,
		Phone:        *phone,
		ReferralCode: *referral,
	})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runVerifyEmail(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("verify-email", flag.ContinueOnError)
	token := fs.String("token", "", "verification token from the email")
	resend := fs.String("resend", "", "resend the verification email to this address instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *resend != "" {
		resp, err := a.client.ResendVerification(ctx, *resend)
		if err != nil {
			return err
		}
		fmt.Println(resp.Message)
		return nil
	}
	if *token == "" {
		return fmt.Errorf("verify-email requires -token or -resend")
	}
	resp, err := a.client.VerifyEmail(ctx, *token)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runForgotPassword(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("forgot-password requires -email")
	}
	resp, err := a.client.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runResetPassword(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	token := fs.String("token", "", "reset token from the email")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "confirm new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" || *password == "" {
		return fmt.Errorf("reset-password requires -token and -password")
	}
	// Mismatches are rejected before any network call.
	if *password != *confirm {
		return errors.New(errors.CodeValidation, "passwords do not match")
	}
	if _, err := a.client.ValidateResetToken(ctx, *token); err != nil {
		return err
	}
	resp, err := a.client.ResetPassword(ctx, api.ResetPasswordInput{
		Token:           *token,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runProducts(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	search := fs.String("search", "", "search term")
	category := fs.Int64("category", 0, "category id")
	page := fs.Int("page", 1, "page number")
	sortBy := fs.String("sort", "", "sort key")
	featured := fs.Bool("featured", false, "featured products only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *featured {
		products, err := a.client.FeaturedProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(a, products)
		return nil
	}

	resp, err := a.client.ListProducts(ctx, api.ProductListParams{
		Search:     *search,
		CategoryID: *category,
		Page:       *page,
		SortBy:     *sortBy,
	})
	if err != nil {
		return err
	}
	printProducts(a, resp.Products)
	if resp.Pagination.Pages > 1 {
		fmt.Printf("page %d of %d\n", *page, resp.Pagination.Pages)
	}
	return nil
}

func printProducts(a *app, products []api.Product) {
	if len(products) == 0 {
		fmt.Println("no products found")
		return
	}
	for _, p := range products {
		price := a.formatMoney(p.DiscountPrice)
		if p.DiscountPrice.Cmp(p.Price) < 0 {
			price = fmt.Sprintf("%s (was %s)", price, a.formatMoney(p.Price))
		}
		fmt.Printf("%6d  %-40s %s\n", p.ProductID, p.ProductName, price)
	}
}

func runProduct(ctx context.Context, a *app, args []string) error {
	id, err := argID(args, "product")
	if err != nil {
		return err
	}
	p, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\nprice: %s  stock: %d\n", p.ProductName, p.Description, a.formatMoney(p.DiscountPrice), p.StockQty)
	return nil
}

func runCategories(ctx context.Context, a *app) error {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%6d  %s\n", c.CategoryID, c.Name)
	}
	return nil
}

func runCart(ctx context.Context, a *app, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "show":
		return printCart(a)
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		productID := fs.Int64("product", 0, "product id")
		qty := fs.Int("qty", 1, "quantity")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *productID == 0 {
			return fmt.Errorf("cart add requires -product")
		}
		p, err := a.client.GetProduct(ctx, *productID)
		if err != nil {
			return err
		}
		item := cart.Item{
			ProductID:     p.ProductID,
			ProductName:   p.ProductName,
			Quantity:      *qty,
			Price:         p.Price,
			DiscountPrice: p.DiscountPrice,
			ImageURL:      p.ImageURL,
		}
		if err := a.syncer.Add(ctx, item); err != nil {
			return err
		}
		return printCart(a)
	case "update":
		fs := flag.NewFlagSet("cart update", flag.ContinueOnError)
		productID := fs.Int64("product", 0, "product id")
		qty := fs.Int("qty", 0, "new quantity, zero removes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *productID == 0 {
			return fmt.Errorf("cart update requires -product")
		}
		if err := a.syncer.UpdateQuantity(ctx, *productID, *qty); err != nil {
			return err
		}
		return printCart(a)
	case "remove":
		id, err := argID(args, "cart remove")
		if err != nil {
			return err
		}
		if err := a.syncer.Remove(ctx, id); err != nil {
			return err
		}
		return printCart(a)
	case "refresh":
		if err := a.syncer.Refresh(ctx); err != nil {
			return err
		}
		return printCart(a)
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func printCart(a *app) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%6d  %-40s x%-3d %s\n", it.ProductID, it.ProductName, it.Quantity, a.formatMoney(it.DiscountPrice))
	}
	totals := checkout.ComputeTotals(a.cart.TotalPrice(), a.cfg.Shipping)
	fmt.Printf("subtotal: %s  shipping: %s  total: %s\n",
		a.formatMoney(totals.Subtotal), a.formatMoney(totals.Shipping), a.formatMoney(totals.Total))
	return nil
}

// bindAddressFlags registers the address dialog fields on the flag set. The
// form's current values become the flag defaults, so an edit only changes the
// fields the user passed.
func bindAddressFlags(fs *flag.FlagSet, form *address.Form) {
	fs.StringVar(&form.Type, "type", form.Type, "address type: home, work, office or other")
	fs.StringVar(&form.Name, "name", form.Name, "recipient name")
	fs.StringVar(&form.Phone, "phone", form.Phone, "contact phone")
	fs.StringVar(&form.AddressLine1, "line1", form.AddressLine1, "address line 1")
	fs.StringVar(&form.AddressLine2, "line2", form.AddressLine2, "address line 2")
	fs.StringVar(&form.City, "city", form.City, "city")
	fs.StringVar(&form.State, "state", form.State, "state")
	fs.StringVar(&form.Pincode, "pincode", form.Pincode, "pincode")
	fs.StringVar(&form.Landmark, "landmark", form.Landmark, "nearby landmark")
	fs.BoolVar(&form.IsDefault, "default", form.IsDefault, "make this the default address")
}

func runAddresses(ctx context.Context, a *app, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		addrs, err := a.client.ListAddresses(ctx)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			fmt.Println("no addresses on file")
			return nil
		}
		for _, addr := range addrs {
			marker := " "
			if addr.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %5d  %-6s %s, %s, %s %s\n",
				marker, addr.AddressID, addr.Type, addr.Name, addr.AddressLine1, addr.City, addr.Pincode)
		}
		return nil
	case "add":
		var form address.Form
		fs := flag.NewFlagSet("addresses add", flag.ContinueOnError)
		bindAddressFlags(fs, &form)
		if err := fs.Parse(args); err != nil {
			return err
		}
		co, err := checkout.New(a.client, a.cart, a.session, a.cfg.Shipping, a.logg)
		if err != nil {
			return err
		}
		if err := co.AddAddress(ctx, form); err != nil {
			return err
		}
		fmt.Println("address saved")
		return nil
	case "edit":
		id, err := argID(args, "addresses edit")
		if err != nil {
			return err
		}
		args = args[1:]
		addrs, err := a.client.ListAddresses(ctx)
		if err != nil {
			return err
		}
		form, found := address.Form{}, false
		for _, addr := range addrs {
			if addr.AddressID == id {
				form, found = address.FromAddress(addr), true
				break
			}
		}
		if !found {
			return errors.New(errors.CodeValidation, "address not found")
		}
		fs := flag.NewFlagSet("addresses edit", flag.ContinueOnError)
		bindAddressFlags(fs, &form)
		if err := fs.Parse(args); err != nil {
			return err
		}
		co, err := checkout.New(a.client, a.cart, a.session, a.cfg.Shipping, a.logg)
		if err != nil {
			return err
		}
		if err := co.UpdateAddress(ctx, id, form); err != nil {
			return err
		}
		fmt.Println("address updated")
		return nil
	case "delete":
		id, err := argID(args, "addresses delete")
		if err != nil {
			return err
		}
		if err := a.client.DeleteAddress(ctx, id); err != nil {
			return err
		}
		fmt.Println("address deleted")
		return nil
	default:
		return fmt.Errorf("unknown addresses subcommand %q", sub)
	}
}

func runCheckout(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	addressID := fs.Int64("address", 0, "delivery address id, default address when omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	co, err := checkout.New(a.client, a.cart, a.session, a.cfg.Shipping, a.logg)
	if err != nil {
		return err
	}
	if err := co.Begin(ctx); err != nil {
		return err
	}
	if *addressID != 0 {
		if err := co.SelectAddress(*addressID); err != nil {
			return err
		}
	}

	selected, ok := co.SelectedAddress()
	if !ok {
		return fmt.Errorf("no delivery address on file, run 'storefront addresses add' first")
	}
	totals := co.Totals()
	fmt.Printf("deliver to: %s, %s, %s %s\n", selected.Name, selected.AddressLine1, selected.City, selected.Pincode)
	fmt.Printf("subtotal: %s  shipping: %s  total: %s\n",
		a.formatMoney(totals.Subtotal), a.formatMoney(totals.Shipping), a.formatMoney(totals.Total))

	conf, err := co.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order placed: %s (status %s)\n", conf.OrderNumber, conf.Status)
	return nil
}

func runOrders(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("orders: invalid order id %q", args[0])
		}
		order, err := a.client.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  %s\n", order.OrderNumber, order.Status, a.formatMoney(order.TotalAmount))
		for _, it := range order.Items {
			fmt.Printf("  %-40s x%-3d %s\n", it.ProductName, it.Quantity, a.formatMoney(it.Price))
		}
		return nil
	}

	orders, err := a.client.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%-12s %-10s %s\n", o.OrderNumber, o.Status, a.formatMoney(o.TotalAmount))
	}
	return nil
}

func runWishlist(ctx context.Context, a *app, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "show":
		products, err := a.client.FetchWishlist(ctx)
		if err != nil {
			return err
		}
		printProducts(a, products)
		return nil
	case "add":
		id, err := argID(args, "wishlist add")
		if err != nil {
			return err
		}
		return a.client.AddWishlistItem(ctx, id)
	case "remove":
		id, err := argID(args, "wishlist remove")
		if err != nil {
			return err
		}
		return a.client.RemoveWishlistItem(ctx, id)
	default:
		return fmt.Errorf("unknown wishlist subcommand %q", sub)
	}
}

func runReferrals(ctx context.Context, a *app) error {
	summary, err := a.client.FetchReferrals(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("code: %s  referred: %d  earned: %s\n",
		summary.ReferralCode, summary.TotalReferred, a.formatMoney(summary.TotalEarned))
	return nil
}

func runWallet(ctx context.Context, a *app) error {
	wallet, err := a.client.FetchWallet(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("wallet balance: %s\n", a.formatMoney(wallet.Balance))
	return nil
}

func runAdmin(ctx context.Context, a *app, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "login":
		fs := flag.NewFlagSet("admin login", flag.ContinueOnError)
		username := fs.String("username", "", "admin username")
		password := fs.String("password", "", "admin password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *username == "" || *password == "" {
			return fmt.Errorf("admin login requires -username and -password")
		}
		resp, err := a.client.AdminLogin(ctx, api.AdminLoginInput{Username: *username, Password: *password})
		if err != nil {
			return err
		}
		a.session.LoginAdmin(ctx, resp.Token, resp.Admin)
		fmt.Printf("signed in as admin %s (%s)\n", resp.Admin.Username, resp.Admin.Role)
		return nil
	case "dashboard":
		stats, err := a.client.AdminDashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("orders: %d (pending %d)  users: %d  products: %d  revenue: %s\n",
			stats.TotalOrders, stats.PendingOrders, stats.TotalUsers, stats.TotalProducts,
			a.formatMoney(stats.TotalRevenue))
		return nil
	case "orders":
		fs := flag.NewFlagSet("admin orders", flag.ContinueOnError)
		status := fs.String("status", "", "filter by status")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := a.client.AdminListOrders(ctx, api.ListParams{Status: *status, Page: *page})
		if err != nil {
			return err
		}
		for _, o := range resp.Items {
			fmt.Printf("%-12s %-10s %s\n", o.OrderNumber, o.Status, a.formatMoney(o.TotalAmount))
		}
		return nil
	case "products":
		fs := flag.NewFlagSet("admin products", flag.ContinueOnError)
		search := fs.String("search", "", "search term")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := a.client.AdminListProducts(ctx, api.ListParams{Search: *search, Page: *page})
		if err != nil {
			return err
		}
		printProducts(a, resp.Items)
		return nil
	case "users":
		fs := flag.NewFlagSet("admin users", flag.ContinueOnError)
		status := fs.String("status", "", "filter by status")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := a.client.AdminListUsers(ctx, api.ListParams{Status: *status, Page: *page})
		if err != nil {
			return err
		}
		for _, u := range resp.Items {
			fmt.Printf("%-28s %-10s %s %s\n", u.Email, u.Status, u.FirstName, u.LastName)
		}
		return nil
	case "product-add", "product-edit":
		return runAdminProductForm(ctx, a, sub, args)
	case "product-delete":
		id, err := argID(args, "admin product-delete")
		if err != nil {
			return err
		}
		if err := a.client.AdminDeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Println("product deleted")
		return nil
	case "categories":
		categories, err := a.client.AdminListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%6d  %s\n", c.CategoryID, c.Name)
		}
		return nil
	case "category-add":
		fs := flag.NewFlagSet("admin category-add", flag.ContinueOnError)
		name := fs.String("name", "", "category name")
		image := fs.String("image", "", "image url")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("admin category-add requires -name")
		}
		cat, err := a.client.AdminCreateCategory(ctx, api.CategoryInput{Name: *name, ImageURL: *image})
		if err != nil {
			return err
		}
		fmt.Printf("created category %d\n", cat.CategoryID)
		return nil
	case "category-edit":
		id, err := argID(args, "admin category-edit")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("admin category-edit", flag.ContinueOnError)
		name := fs.String("name", "", "category name")
		image := fs.String("image", "", "image url")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("admin category-edit requires -name")
		}
		if _, err := a.client.AdminUpdateCategory(ctx, id, api.CategoryInput{Name: *name, ImageURL: *image}); err != nil {
			return err
		}
		fmt.Println("category updated")
		return nil
	case "category-delete":
		id, err := argID(args, "admin category-delete")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("admin category-delete", flag.ContinueOnError)
		force := fs.Bool("force", false, "also detach the category's products")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.client.AdminDeleteCategory(ctx, id, *force); err != nil {
			return err
		}
		fmt.Println("category deleted")
		return nil
	case "order-status":
		id, err := argID(args, "admin order-status")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("admin order-status", flag.ContinueOnError)
		status := fs.String("status", "", "new order status")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *status == "" {
			return fmt.Errorf("admin order-status requires -status")
		}
		if err := a.client.AdminUpdateOrderStatus(ctx, id, *status); err != nil {
			return err
		}
		fmt.Println("order status updated")
		return nil
	case "user-status":
		if len(args) == 0 {
			return fmt.Errorf("admin user-status requires a user id")
		}
		userID := args[0]
		fs := flag.NewFlagSet("admin user-status", flag.ContinueOnError)
		status := fs.String("status", "", "new account status")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *status == "" {
			return fmt.Errorf("admin user-status requires -status")
		}
		if err := a.client.AdminUpdateUserStatus(ctx, userID, *status); err != nil {
			return err
		}
		fmt.Println("user status updated")
		return nil
	case "referrals":
		fs := flag.NewFlagSet("admin referrals", flag.ContinueOnError)
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := a.client.AdminListReferrals(ctx, api.ListParams{Page: *page})
		if err != nil {
			return err
		}
		for _, r := range resp.Items {
			fmt.Printf("%-28s -> %-28s %-10s %s\n",
				r.ReferrerEmail, r.ReferredEmail, r.Status, a.formatMoney(r.RewardAmount))
		}
		return nil
	default:
		fmt.Fprintln(os.Stderr, `admin subcommands: login, dashboard, orders, order-status, products,
  product-add, product-edit, product-delete, categories, category-add,
  category-edit, category-delete, users, user-status, referrals`)
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

// runAdminProductForm backs both product-add and product-edit. Edits fetch
// the product first so unset flags keep their current values.
func runAdminProductForm(ctx context.Context, a *app, sub string, args []string) error {
	var (
		base api.Product
		id   int64
	)
	if sub == "product-edit" {
		var err error
		id, err = argID(args, "admin product-edit")
		if err != nil {
			return err
		}
		args = args[1:]
		p, err := a.client.AdminGetProduct(ctx, id)
		if err != nil {
			return err
		}
		base = *p
	}

	fs := flag.NewFlagSet("admin "+sub, flag.ContinueOnError)
	name := fs.String("name", base.ProductName, "product name")
	description := fs.String("description", base.Description, "product description")
	price := fs.String("price", base.Price.String(), "list price")
	discount := fs.String("discount", base.DiscountPrice.String(), "discounted price")
	categoryID := fs.Int64("category", base.CategoryID, "category id")
	stock := fs.Int("stock", base.StockQty, "stock quantity")
	featured := fs.Bool("featured", base.IsFeatured, "feature on the home page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("admin %s requires -name", sub)
	}

	input := api.ProductInput{
		ProductName:   *name,
		Description:   *description,
		Price:         money.Parse(*price),
		DiscountPrice: money.Parse(*discount),
		CategoryID:    *categoryID,
		StockQty:      *stock,
		IsFeatured:    *featured,
	}
	if sub == "product-add" {
		p, err := a.client.AdminCreateProduct(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("created product %d\n", p.ProductID)
		return nil
	}
	if _, err := a.client.AdminUpdateProduct(ctx, id, input); err != nil {
		return err
	}
	fmt.Println("product updated")
	return nil
}

func argID(args []string, command string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s requires an id", command)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid id %q", command, args[0])
	}
	return id, nil
}
