package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/crud-console/internal/view"
)

const productMenuText = "\n1. Add Product\n2. View Products\n3. Update Product\n4. Delete Product\n5. Back\n"

// productMenu talks to storage directly; there is no product controller.
func (c *Console) productMenu(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, productMenuText)

		choice, err := c.in.nextInt()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.addProduct(ctx)
		case 2:
			err = c.listProducts(ctx)
		case 3:
			err = c.updateProduct(ctx)
		case 4:
			err = c.deleteProduct(ctx)
		case 5:
			return nil
		default:
			fmt.Fprintln(c.out, invalidChoice)
		}
		if err != nil {
			return err
		}
	}
}

// readNameAndPrice consumes two tokens: a single-word name and a price.
func (c *Console) readNameAndPrice() (string, float64, error) {
	name, err := c.in.next()
	if err != nil {
		return "", 0, err
	}
	price, err := c.in.nextFloat()
	if err != nil {
		return "", 0, err
	}
	return name, price, nil
}

func (c *Console) addProduct(ctx context.Context) error {
	fmt.Fprint(c.out, "Enter name and price: ")
	name, price, err := c.readNameAndPrice()
	if err != nil {
		return err
	}

	id, err := c.store.CreateProduct(ctx, name, price)
	if err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	slog.Debug("product created", slog.Int64("id", id))
	fmt.Fprintln(c.out, "Product added.")
	return nil
}

func (c *Console) listProducts(ctx context.Context) error {
	products, err := c.store.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return view.Products(c.out, products)
}

// updateProduct confirms even when no row had that id. The zero count is
// only logged.
func (c *Console) updateProduct(ctx context.Context) error {
	fmt.Fprint(c.out, "Enter product ID to update: ")
	id, err := c.in.nextID()
	if err != nil {
		return err
	}

	fmt.Fprint(c.out, "Enter new name and price: ")
	name, price, err := c.readNameAndPrice()
	if err != nil {
		return err
	}

	affected, err := c.store.UpdateProductByID(ctx, id, name, price)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		slog.Info("update matched no product", slog.Int64("id", id))
	}

	fmt.Fprintln(c.out, "Product updated.")
	return nil
}

func (c *Console) deleteProduct(ctx context.Context) error {
	fmt.Fprint(c.out, "Enter product ID to delete: ")
	id, err := c.in.nextID()
	if err != nil {
		return err
	}

	affected, err := c.store.DeleteProductByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		slog.Info("delete matched no product", slog.Int64("id", id))
	}

	fmt.Fprintln(c.out, "Product deleted.")
	return nil
}
