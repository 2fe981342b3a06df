// Package source retrieves ontology documents.
//
// A location is either a URL (http, https, ftp) or a filesystem path:
//
//	loc, err := source.ParseLocation("http://purl.obolibrary.org/obo/ms.obo")
//	res, err := source.NewFetcher(source.WithTimeout(time.Minute)).Fetch(ctx, loc)
//
// Missing local files and HTTP 404 responses fail with ErrNotFound, which
// also matches fs.ErrNotExist. HTTP bodies that declare a non-UTF-8 charset
// are decoded to UTF-8. FTP transfers log in anonymously unless credentials
// are configured or embedded in the URL.
//
// Imports declared by a document are interpreted relative to the document's
// own location with Location.Resolve.
package source
