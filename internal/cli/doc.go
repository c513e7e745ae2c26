// Package cli wires settings, logging, the terminal prompt and the download
// Manager into the cobra commands of grabr and menugrabr.
//
//	func main() {
//	    cli.Execute(cli.Images())
//	}
package cli
