// Package bandcamp turns Bandcamp pages into canonical album metadata.
//
// A Bandcamp album or track page embeds its data redundantly in three
// places: the #pagedata data-blob attribute, an ld+json script, and
// data-tralbum script attributes. The blobs overlap, occasionally
// contradict each other, and are written in loose JavaScript object
// syntax rather than strict JSON.
//
// The package splits the work into three stages:
//
//   - Extractor locates the blobs and normalizes each to strict JSON
//   - Merge collapses them into one mapping by shallow key overwrite
//     in document order
//   - Reconciler resolves the fallback and priority chains (release
//     date, track identifiers, duplicate numbering, label lookup) into
//     a model.Album
//
// Parser wires the stages behind a single call:
//
//	parser := bandcamp.NewParser(client, logger)
//	album, err := parser.ParseAlbumPage(ctx, url, bandcamp.ReconcileOptions{IncludeArt: true})
//
// Discography separately lists the album/track URLs of an artist's
// /music page:
//
//	urls := bandcamp.NewDiscography(client, logger).AlbumURLs(ctx, "artist")
package bandcamp
