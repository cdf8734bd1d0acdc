// Package readably extracts the primary readable content of an HTML
// document, discarding navigation, advertising and other boilerplate.
// It identifies the article body with a tree-propagation scoring
// algorithm over text density, punctuation and class-name hints, and
// gathers title, byline, language and publication metadata from meta
// tags, structured data and the DOM.
//
// Usage:
//
//	parser := readably.New(
//	    readably.WithCharThreshold(500),
//	)
//
//	article, err := parser.ParseHTML(htmlString)
//	if err != nil {
//	    // errors.Is(err, readably.ErrNoContent) etc.
//	}
//	fmt.Println(article.Title)
//	fmt.Println(article.TextContent)
//
// A cheap pre-check is available without running the full extraction:
//
//	if readably.IsProbablyReaderable(htmlString) {
//	    // worth parsing
//	}
package readably
