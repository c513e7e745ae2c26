// Package download provides the pipeline that turns a page URL into files
// on disk.
//
// # Manager
//
// The Manager coordinates one run:
//
//  1. Fetch the page (decoded to UTF-8)
//  2. Extract image URLs or menu items
//  3. Download each image, one at a time, in document order
//  4. For menu items, write a <slug>_details.txt record next to the image
//
// # Basic Usage
//
//	client := http.NewClient(settings.UserAgent, settings.Timeout())
//	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.RunImages(ctx, "https://cafe.example/gallery")
//	if err != nil {
//	    log.Fatal(err) // page could not be fetched
//	}
//	fmt.Printf("%d/%d\n", summary.Succeeded, summary.Found)
//
// # Failures
//
// Per-item failures never abort a run. They are reported through the
// progress callback and reflected in Summary.Succeeded. Responses that are
// not images are rejected with ErrNotImage and leave nothing on disk.
//
// # Progress Tracking
//
// Messages are reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Byte counts of the file being written are reported separately as
// TransferEvent, see Manager.SetTransferCallback.
package download
