package api

import (
	"context"
	"fmt"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// CartItem identifies one product and quantity for cart operations. ID is an
// ASIN or offer listing id for CartCreate/CartAdd, and the CartItemId
// assigned by the service for CartModify.
type CartItem struct {
	ID       string
	Quantity int
}

// cartItemParams serializes items into the indexed Item.N.<key> parameter
// form the service expects.
func cartItemParams(items []CartItem, key string) Params {
	p := make(Params, 2*len(items))
	for i, item := range items {
		p[fmt.Sprintf("Item.%d.%s", i+1, key)] = item.ID
		p[fmt.Sprintf("Item.%d.Quantity", i+1)] = item.Quantity
	}
	return p
}

func mergeParams(dst, src Params) {
	for key, val := range src {
		dst[key] = val
	}
}

// CartCreate creates a remote shopping cart holding the given items. A cart
// cannot be created empty, and CartCreate can be used only once per cart;
// all later changes go through the other cart operations.
func (c *Client) CartCreate(ctx context.Context, items []CartItem, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "CartCreate"
	mergeParams(p, cartItemParams(items, "ASIN"))
	return c.Call(ctx, p)
}

// CartAdd adds new items to an existing cart, identified by the cart id and
// HMAC returned by CartCreate. Quantities of items already in the cart
// change through CartModify instead.
func (c *Client) CartAdd(ctx context.Context, cartID, hmac string, items []CartItem, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "CartAdd"
	p["CartId"] = cartID
	p["HMAC"] = hmac
	mergeParams(p, cartItemParams(items, "ASIN"))
	return c.Call(ctx, p)
}

// CartModify changes the quantities of items already in the cart; a quantity
// of zero removes the item. Items are addressed by their CartItemId.
func (c *Client) CartModify(ctx context.Context, cartID, hmac string, items []CartItem, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "CartModify"
	p["CartId"] = cartID
	p["HMAC"] = hmac
	mergeParams(p, cartItemParams(items, "CartItemId"))
	return c.Call(ctx, p)
}

// CartGet retrieves the ids, quantities and prices of everything in the
// cart, including SavedForLater items.
func (c *Client) CartGet(ctx context.Context, cartID, hmac string, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "CartGet"
	p["CartId"] = cartID
	p["HMAC"] = hmac
	return c.Call(ctx, p)
}

// CartClear removes every item from the cart. The cart itself survives;
// carts expire on their own after seven days without activity.
func (c *Client) CartClear(ctx context.Context, cartID, hmac string, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "CartClear"
	p["CartId"] = cartID
	p["HMAC"] = hmac
	return c.Call(ctx, p)
}
