package normalize

import "github.com/Veraticus/installmart/internal/model"

// Properties normalizes a property list payload.
func Properties(payload any, origin string) []model.Property {
	raws := Objects(LocateItems(payload, "properties", "listings"))
	out := make([]model.Property, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Property(raw, origin))
	}
	return out
}

// Property normalizes a single raw property, keeping whichever variant the
// record carries. Variant selection itself happens in model.Property.Kind.
//
// Nested objects are decoded on their own so that one unreadable field
// inside them never discards the whole variant.
func Property(raw map[string]any, origin string) model.Property {
	var p model.Property
	decodeLogged("property", without(raw, "project", "individualProperty"), &p)

	p.ID = firstNonEmpty(String(raw, "_id"), String(raw, "id"), StableID(raw))
	p.Images = model.ResolveImages(origin, ImagePaths(raw["images"]))

	if nested, ok := nestedObject(raw["project"]); ok {
		p.Project = projectDetails(nested, origin)
	}
	if nested, ok := nestedObject(raw["individualProperty"]); ok {
		p.IndividualProperty = individualDetails(nested, origin)
	}

	p.Amenities = nonNil(p.Amenities)
	p.Original = raw
	return p
}

func projectDetails(nested map[string]any, origin string) *model.ProjectDetails {
	var d model.ProjectDetails
	decodeLogged("project", without(nested, "transaction", "contact", "images"), &d)

	d.Transaction = transaction(nested["transaction"])
	if d.Transaction != nil && d.Transaction.PriceRange == nil {
		d.Transaction.PriceRange = priceRange(nested["priceRange"])
	}
	d.Contact = contact(nested["contact"])
	d.Images = model.ResolveImages(origin, ImagePaths(nested["images"]))
	d.Highlights = nonNil(d.Highlights)
	d.NearbyLandmarks = nonNil(d.NearbyLandmarks)
	return &d
}

func individualDetails(nested map[string]any, origin string) *model.IndividualDetails {
	var d model.IndividualDetails
	decodeLogged("individualProperty", without(nested, "transaction", "contact", "images"), &d)

	d.Transaction = transaction(nested["transaction"])
	d.Contact = contact(nested["contact"])
	d.Images = model.ResolveImages(origin, ImagePaths(nested["images"]))
	d.Highlights = nonNil(d.Highlights)
	d.NearbyLandmarks = nonNil(d.NearbyLandmarks)
	return &d
}

func transaction(v any) *model.Transaction {
	obj, ok := nestedObject(v)
	if !ok {
		return nil
	}
	var t model.Transaction
	decodeLogged("transaction", without(obj, "priceRange"), &t)
	t.PriceRange = priceRange(obj["priceRange"])
	return &t
}

func contact(v any) *model.Contact {
	obj, ok := nestedObject(v)
	if !ok {
		return nil
	}
	var c model.Contact
	decodeLogged("contact", obj, &c)
	return &c
}

// nestedObject reports whether v is a JSON object. Unlike Object, an empty
// object still counts as present.
func nestedObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

// without returns a shallow copy of raw minus keys.
func without(raw map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func priceRange(v any) *model.PriceRange {
	obj := Object(v)
	if obj == nil {
		return nil
	}
	r := &model.PriceRange{Min: Number(obj, "min"), Max: Number(obj, "max")}
	if r.Min == 0 && r.Max == 0 {
		return nil
	}
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
