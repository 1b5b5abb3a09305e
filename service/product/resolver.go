package product

import (
	"fmt"
	"strings"

	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

// NameResolver maps one name or code to an id. A non-empty message means
// the name is unknown.
type NameResolver interface {
	ResolveName(name string) (uint, string)
}

// CodesResolver maps a list of codes to ids.
type CodesResolver interface {
	ResolveCodes(codes []string) ([]uint, string)
}

// WebsiteResolver resolves website codes one at a time or as a list.
type WebsiteResolver interface {
	NameResolver
	CodesResolver
}

// CategoryImporter turns category name paths into leaf category ids,
// creating missing categories when autoCreate is set.
type CategoryImporter interface {
	ImportCategoryPaths(paths []string, autoCreate bool, separator string) ([]uint, string, error)
}

// OptionResolver maps option labels of a select/multi-select attribute.
type OptionResolver interface {
	ResolveOption(attributeCode, label string, autoCreate bool) (uint, string, error)
	ResolveOptions(attributeCode string, labels []string, autoCreate bool) ([]uint, string, error)
}

// SKUResolver maps referenced SKUs to product ids. Missing SKUs get a
// placeholder product so the association can be written.
type SKUResolver interface {
	ResolveSKUs(skus []string) (map[string]uint, error)
}

// ReferenceResolver replaces every symbolic reference of a batch by an id.
// Failures are recorded on the product; only infrastructure problems and
// contract violations are returned as errors.
type ReferenceResolver struct {
	Meta           *meta.MetaData
	AttributeSets  NameResolver
	StoreViews     NameResolver
	TaxClasses     NameResolver
	CustomerGroups NameResolver
	Websites       WebsiteResolver
	Categories     CategoryImporter
	Options        OptionResolver
	Products       SKUResolver
}

// ResolveExternalReferences resolves references to catalog configuration:
// tier prices first, then per product attribute set, categories, websites
// and per store view store id, tax class, selects and multi-selects.
func (r *ReferenceResolver) ResolveExternalReferences(products []*data.Product, cfg ImportConfig) error {
	r.resolveTierPrices(products)

	for _, p := range products {
		if name, ok := p.AttributeSet.Symbol(); ok {
			if id, msg := r.AttributeSets.ResolveName(name); msg != "" {
				p.AddError(msg)
				p.AttributeSet.Fail(msg)
			} else {
				p.AttributeSet.Resolve(id)
			}
		}

		if paths, ok := p.Categories.Symbol(); ok {
			ids, msg, err := r.Categories.ImportCategoryPaths(paths, cfg.AutoCreateCategories, cfg.CategoryPathSeparator)
			if err != nil {
				return fmt.Errorf("import categories for %s: %w", p.SKU(), err)
			}
			if msg != "" {
				p.AddError(msg)
				p.Categories.Fail(msg)
			} else {
				p.Categories.Resolve(ids)
			}
		}

		if codes, ok := p.Websites.Symbol(); ok {
			if ids, msg := r.Websites.ResolveCodes(codes); msg != "" {
				p.AddError(msg)
				p.Websites.Fail(msg)
			} else {
				p.Websites.Resolve(ids)
			}
		}

		for _, sv := range p.StoreViews() {
			if err := r.resolveStoreView(p, sv, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ReferenceResolver) resolveStoreView(p *data.Product, sv *data.StoreView, cfg ImportConfig) error {
	if code, ok := sv.StoreID.Symbol(); ok {
		if id, msg := r.StoreViews.ResolveName(code); msg != "" {
			p.AddError(msg)
			sv.StoreID.Fail(msg)
		} else {
			sv.StoreID.Resolve(id)
		}
	}

	if name, ok := sv.TaxClass.Symbol(); ok {
		if id, msg := r.TaxClasses.ResolveName(name); msg != "" {
			p.AddError(msg)
			sv.TaxClass.Fail(msg)
		} else {
			sv.TaxClass.Resolve(id)
		}
	}

	for code, ref := range sv.Selects {
		label, ok := ref.Symbol()
		if !ok {
			continue
		}
		if err := r.checkOptionAttribute(code); err != nil {
			return err
		}
		if strings.TrimSpace(label) == "" {
			delete(sv.Selects, code)
			continue
		}
		id, msg, err := r.Options.ResolveOption(code, label, cfg.autoCreatesOptions(code))
		if err != nil {
			return fmt.Errorf("resolve option %s of %s: %w", code, p.SKU(), err)
		}
		if msg != "" {
			p.AddError(msg)
			ref.Fail(msg)
		} else {
			ref.Resolve(id)
		}
		sv.Selects[code] = ref
	}

	for code, ref := range sv.MultiSelects {
		labels, ok := ref.Symbol()
		if !ok {
			continue
		}
		if err := r.checkOptionAttribute(code); err != nil {
			return err
		}
		labels = nonEmpty(labels)
		if len(labels) == 0 {
			delete(sv.MultiSelects, code)
			continue
		}
		ids, msg, err := r.Options.ResolveOptions(code, labels, cfg.autoCreatesOptions(code))
		if err != nil {
			return fmt.Errorf("resolve options %s of %s: %w", code, p.SKU(), err)
		}
		if msg != "" {
			p.AddError(msg)
			ref.Fail(msg)
		} else {
			ref.Resolve(ids)
		}
		sv.MultiSelects[code] = ref
	}
	return nil
}

func (r *ReferenceResolver) checkOptionAttribute(code string) error {
	attr, ok := r.Meta.Attribute(code)
	if !ok || !(attr.IsSelect() || attr.IsMultiSelect()) {
		return fmt.Errorf("%w: %q is not an option attribute", ErrUnknownAttribute, code)
	}
	return nil
}

func (r *ReferenceResolver) resolveTierPrices(products []*data.Product) {
	for _, p := range products {
		for _, tp := range p.TierPrices {
			if group, ok := tp.CustomerGroup.Symbol(); ok {
				if id, msg := r.CustomerGroups.ResolveName(group); msg != "" {
					p.AddError(msg)
					tp.CustomerGroup.Fail(msg)
				} else {
					tp.CustomerGroup.Resolve(id)
				}
			}
			if code, ok := tp.Website.Symbol(); ok {
				if id, msg := r.Websites.ResolveName(code); msg != "" {
					p.AddError(msg)
					tp.Website.Fail(msg)
				} else {
					tp.Website.Resolve(id)
				}
			}
		}
	}
}

// ResolveProductReferences resolves SKU references to other products. It
// must run after ResolveExternalReferences.
func (r *ReferenceResolver) ResolveProductReferences(products []*data.Product, cfg ImportConfig) error {
	var skus []string
	for _, p := range products {
		skus = append(skus, p.LinkedSKUs()...)
	}
	ids := map[string]uint{}
	if len(skus) > 0 {
		var err error
		if ids, err = r.Products.ResolveSKUs(unique(skus)); err != nil {
			return fmt.Errorf("resolve linked skus: %w", err)
		}
	}

	for _, p := range products {
		for _, t := range data.LinkTypes {
			ref := p.Links[t]
			resolveSKUList(p, &ref, ids)
			p.Links[t] = ref
		}
	}

	for _, p := range products {
		switch p.Type {
		case data.TypeBundle:
			for _, o := range p.BundleOptions {
				for _, s := range o.Selections {
					resolveSKU(p, &s.Product, ids)
				}
			}
		case data.TypeGrouped:
			resolveSKUList(p, &p.GroupedMembers, ids)
		case data.TypeConfigurable:
			resolveSKUList(p, &p.ConfigurableVariants, ids)
			r.resolveSuperAttributes(p)
		}
	}
	return nil
}

func (r *ReferenceResolver) resolveSuperAttributes(p *data.Product) {
	codes, ok := p.SuperAttributes.Symbol()
	if !ok {
		return
	}
	ids := make([]uint16, 0, len(codes))
	for _, code := range codes {
		attr, ok := r.Meta.Attribute(code)
		if !ok || !attr.IsSelect() {
			msg := fmt.Sprintf("super attribute %q is not a select attribute", code)
			p.AddError(msg)
			p.SuperAttributes.Fail(msg)
			return
		}
		ids = append(ids, attr.ID)
	}
	p.SuperAttributes.Resolve(ids)
}

func resolveSKU(p *data.Product, ref *data.Ref[string, uint], ids map[string]uint) {
	sku, ok := ref.Symbol()
	if !ok {
		return
	}
	if id, found := ids[sku]; found {
		ref.Resolve(id)
		return
	}
	msg := fmt.Sprintf("linked product sku not found: %s", sku)
	p.AddError(msg)
	ref.Fail(msg)
}

func resolveSKUList(p *data.Product, ref *data.SKURefs, ids map[string]uint) {
	skus, ok := ref.Symbol()
	if !ok {
		return
	}
	out := make([]uint, 0, len(skus))
	var missing []string
	for _, sku := range skus {
		if id, found := ids[sku]; found {
			out = append(out, id)
		} else {
			missing = append(missing, sku)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("linked product skus not found: %s", strings.Join(missing, ", "))
		p.AddError(msg)
		ref.Fail(msg)
		return
	}
	ref.Resolve(out)
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
