// Package dto holds the deserialized shapes of the raw data fragments a
// Bandcamp page embeds: the data-tralbum/pagedata objects (trackinfo,
// current, embed_info, item_sellers) and the schema.org ld+json block
// (additionalProperty, itemListElement, albumRelease).
//
// These types mirror the page's wire format; the reconciler in the
// parent package converts them into the canonical model types.
package dto
