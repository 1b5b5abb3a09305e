package data

import "fmt"

const (
	RedirectNone      uint16 = 0
	RedirectPermanent uint16 = 301
)

// UrlRewrite is a generated url_rewrite row before it is written.
type UrlRewrite struct {
	ProductID     uint
	RequestPath   string
	TargetPath    string
	RedirectType  uint16
	StoreID       uint
	Metadata      map[string]string
	Autogenerated bool
}

// CategoryID returns the category_id metadata entry, or "".
func (u *UrlRewrite) CategoryID() string {
	if u.Metadata == nil {
		return ""
	}
	return u.Metadata["category_id"]
}

// Key identifies the route a rewrite belongs to: product plus category.
func (u *UrlRewrite) Key() string {
	return RewriteKey(u.ProductID, u.CategoryID())
}

// RewriteKey builds the product/category key rewrites are matched on.
func RewriteKey(productID uint, categoryID string) string {
	return fmt.Sprintf("%d/%s", productID, categoryID)
}
