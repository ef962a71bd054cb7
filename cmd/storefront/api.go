package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tienda-online/storefront/internal/client"
	"github.com/tienda-online/storefront/internal/notify"
	"github.com/tienda-online/storefront/internal/render"
)

const genericErrorMessage = "An error occurred. Please try again."

// call is one backend operation made with the command's client. The argument order matches the
// method expressions, e.g. (*client.Client).Me
type call func(c *client.Client, ctx context.Context) (json.RawMessage, error)

// run logs in when --email is set, makes the call and prints the payload to stdout.
// The payload's message (if any) is written to stderr through a notifier with no toast container.
func (a *app) run(cmd *cobra.Command, operation string, fn call) error {
	ctx := cmd.Context()
	n := notify.New(notify.NewWriterPage(cmd.ErrOrStderr()), notify.WithLogger(a.logger))

	c := client.NewClient(a.cfg.APIBaseURL,
		client.WithTimeout(a.cfg.APITimeout),
		client.WithLogger(a.logger),
	)

	if a.email != "" && operation != "login" && operation != "register" {
		payload, err := c.Login(ctx, a.email, a.password)
		if err != nil {
			return a.fail(n, "login", err)
		}
		if msg, isError := client.PayloadMessage(payload); isError {
			n.Error(msg)
			return fmt.Errorf("login failed: %s", msg)
		}
	}

	payload, err := fn(c, ctx)
	if err != nil {
		return a.fail(n, operation, err)
	}

	if err := render.JSON(cmd.OutOrStdout(), payload, outputFormat(cmd.OutOrStdout())); err != nil {
		return err
	}

	if msg, isError := client.PayloadMessage(payload); msg != "" {
		n.Toast(msg, isError)
	}
	return nil
}

func (a *app) fail(n *notify.Notifier, operation string, err error) error {
	a.logger.Error("backend call failed", slog.String("operation", operation), slog.String("error", err.Error()))

	var ce *client.ClientError
	if errors.As(err, &ce) {
		n.Error(ce.UserError())
	} else {
		n.Error(genericErrorMessage)
	}
	return err
}

// outputFormat highlights the payload when stdout is a terminal
func outputFormat(w io.Writer) render.Format {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return render.Terminal
	}
	return render.Plain
}

// jsonData parses a --data flag. The value is sent to the backend as is.
func jsonData(data string) (json.RawMessage, error) {
	if data == "" {
		return nil, fmt.Errorf("--data is required")
	}
	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("--data is not valid JSON: %s", data)
	}
	return json.RawMessage(data), nil
}

// loginCmd uses the root --email and --password flags
func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in (POST /api/login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.email == "" {
				return fmt.Errorf("--email and --password are required")
			}
			return a.run(cmd, "login", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.Login(ctx, a.email, a.password)
			})
		},
	}
}

// registerCmd takes the new account's password as --new-password so it does not clash with the root --password
func (a *app) registerCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (POST /api/register)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "register", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.Register(ctx, username, password)
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "new-password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("new-password")
	return cmd
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged in user (GET /api/me)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "me", (*client.Client).Me)
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session (GET /api/logout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "logout", (*client.Client).Logout)
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users (GET /api/users)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list_users", (*client.Client).ListUsers)
		},
	}

	var data string
	update := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user (PUT /api/users/{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := jsonData(data)
			if err != nil {
				return err
			}
			return a.run(cmd, "update_user", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.UpdateUser(ctx, args[0], body)
			})
		},
	}
	update.Flags().StringVar(&data, "data", "", `JSON body, e.g. '{"role":"admin"}'`)

	del := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user (DELETE /api/users/{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "delete_user", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.DeleteUser(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, update, del)
	return cmd
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and manage products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products (GET /api/products)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list_products", (*client.Client).ListProducts)
		},
	}

	var createData string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product (POST /api/products)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := jsonData(createData)
			if err != nil {
				return err
			}
			return a.run(cmd, "create_product", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.CreateProduct(ctx, body)
			})
		},
	}
	create.Flags().StringVar(&createData, "data", "", `JSON body, e.g. '{"name":"mug","price":9.5,"stock":3}'`)

	var updateData string
	update := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Update a product (PUT /api/products/{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := jsonData(updateData)
			if err != nil {
				return err
			}
			return a.run(cmd, "update_product", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.UpdateProduct(ctx, args[0], body)
			})
		},
	}
	update.Flags().StringVar(&updateData, "data", "", "JSON body")

	del := &cobra.Command{
		Use:   "delete PRODUCT_ID",
		Short: "Delete a product (DELETE /api/products/{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "delete_product", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.DeleteProduct(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart (GET /api/cart)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list_cart", (*client.Client).ListCart)
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add a product to the cart (POST /api/cart)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "add_to_cart", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				if cmd.Flags().Changed("qty") {
					return c.AddToCart(ctx, args[0], qty)
				}
				return c.AddToCart(ctx, args[0])
			})
		},
	}
	add.Flags().IntVar(&qty, "qty", client.DefaultQuantity, "quantity")

	remove := &cobra.Command{
		Use:   "remove PRODUCT_ID",
		Short: "Remove a product from the cart (DELETE /api/cart/{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "remove_from_cart", func(c *client.Client, ctx context.Context) (json.RawMessage, error) {
				return c.RemoveFromCart(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func (a *app) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Turn the cart into an order (POST /api/checkout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "checkout", (*client.Client).Checkout)
		},
	}
}

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show orders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List orders (GET /api/orders)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list_orders", (*client.Client).ListOrders)
		},
	})
	return cmd
}
