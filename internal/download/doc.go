// Package download drives the sequential download-and-tag pipeline.
//
// # Manager
//
// The Manager processes one album at a time, one track at a time:
//
//  1. Confirm an incomplete track list with the user (unless skipped)
//  2. Compute the destination path from the configured template
//  3. Cache the album cover as a sibling cover.jpg, once per album
//  4. Stream the track to a .tmp file in chunks of 1% of the declared
//     content length
//  5. Verify the byte count against the declared length, re-streaming
//     up to 3 attempts before giving up on the track
//  6. Write ID3 tags and atomically rename the temp file to its final
//     name
//
// Existing final files are skipped unless overwrite is requested; a
// leftover .tmp file from a previous run goes straight to tagging. Any
// unexpected streaming error aborts the album's remaining tracks,
// while per-track skips and retry exhaustion do not.
//
// # Basic usage
//
//	mgr := download.NewManager(settings, client, confirm, logger)
//	err := mgr.Start(ctx, album)
package download
