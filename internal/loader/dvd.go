package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// dvdRoles maps the container elements to the role each listed person
// carries on the link row.
var dvdRoles = []struct {
	container string
	role      string
}{
	{"actors", "ACTOR"},
	{"creators", "CREATOR"},
	{"directors", "DIRECTOR"},
}

// loadDvd builds the dvd specialization and its cast/crew links. The same
// person may appear under several roles (creator and director, say); each
// role gets its own link row, deduplicated on (person, product, role).
func (l *Loader) loadDvd(ctx context.Context, u *unit, item *xmltree.Node, asin string, productID int64) bool {
	spec := item.Child("dvdspec")

	format := spec.ChildText("format")
	if format == "" {
		l.fail(ctx, u, CodeDvdFormat, asin, "format", "unknown format")
		return false
	}

	duration, ok := parseInt(spec.ChildText("runningtime"))
	if !ok {
		l.fail(ctx, u, CodeDvdDuration, asin, "duration", "missing duration")
		return false
	}

	region := spec.ChildText("regioncode")
	if region == "" {
		l.fail(ctx, u, CodeDvdRegionCode, asin, "region_code", "missing region code")
		return false
	}

	exists, err := l.res.Exists(ctx, u.tx, "dvds", []Col{{"id", productID}})
	if err != nil {
		l.fail(ctx, u, CodeDvdInsert, asin, "SELECT DVD", err.Error())
		return false
	}
	if exists {
		return true
	}

	err = l.res.Insert(ctx, u.tx, "dvds", []Col{
		{"id", productID},
		{"format", format},
		{"duration", duration},
		{"region_code", region},
	})
	if err != nil {
		l.fail(ctx, u, CodeDvdInsert, asin, "INSERT DVD", err.Error())
		return false
	}
	if !l.checkpoint(ctx, u, CodeDvdInsert, asin) {
		return false
	}
	loaded("dvd")

	for _, r := range dvdRoles {
		for _, p := range item.ChildrenOf(r.container) {
			name := p.Attr("name")
			if name == "" {
				continue
			}
			l.ensurePersonLink(ctx, u, name, productID, r.role, CodePersonInsert, CodePersonLink)
		}
	}

	return true
}
