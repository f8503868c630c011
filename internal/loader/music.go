package loader

import (
	"context"

	"mediaload/internal/parser/xmltree"
)

// loadMusic builds the cd specialization: the cd row (sharing the product
// id), its tracks in document order, and the artist links.
//
// Label selection: the longest label name wins; the first occurrence at the
// maximum length wins ties (strict > below).
//
// A cd row that already exists means this asin was fully loaded before, so
// tracks and artists are skipped; tracks carry no natural key, so this is
// what keeps reruns from duplicating them.
func (l *Loader) loadMusic(ctx context.Context, u *unit, item *xmltree.Node, asin string, productID int64) bool {
	label := ""
	for _, n := range item.ChildrenOf("labels") {
		if v := n.Attr("name"); len(v) > len(label) {
			label = v
		}
	}
	if label == "" {
		l.fail(ctx, u, CodeCdLabel, asin, "label", "missing label")
		return false
	}

	released, ok := parseDate(item.Child("musicspec").ChildText("releasedate"))
	if !ok {
		l.fail(ctx, u, CodeCdReleaseDate, asin, "date_published", "missing date published")
		return false
	}

	exists, err := l.res.Exists(ctx, u.tx, "cds", []Col{{"id", productID}})
	if err != nil {
		l.fail(ctx, u, CodeCdInsert, asin, "SELECT CD", err.Error())
		return false
	}
	if exists {
		return true
	}

	err = l.res.Insert(ctx, u.tx, "cds", []Col{
		{"id", productID},
		{"label", label},
		{"date_published", released},
	})
	if err != nil {
		l.fail(ctx, u, CodeCdInsert, asin, "INSERT CD", err.Error())
		return false
	}
	if !l.checkpoint(ctx, u, CodeCdInsert, asin) {
		return false
	}
	loaded("cd")

	// One bad track cannot take the cd row or its siblings with it: each
	// track is its own checkpoint.
	for _, t := range item.ChildrenOf("tracks") {
		err := l.res.Insert(ctx, u.tx, "tracks", []Col{
			{"cd_id", productID},
			{"title", t.Text},
		})
		if err != nil {
			l.fail(ctx, u, CodeTrackInsert, asin, "INSERT Track", err.Error())
			continue
		}
		l.checkpoint(ctx, u, CodeTrackInsert, asin)
	}

	for _, a := range item.ChildrenOf("artists") {
		name := a.Attr("name")
		if name == "" {
			continue
		}
		l.ensurePersonLink(ctx, u, name, productID, "ARTIST", CodeArtistInsert, CodeArtistLink)
	}

	return true
}
