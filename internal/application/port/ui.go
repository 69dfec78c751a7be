package port

// Document is the screen the containers act on
type Document interface {
	// Alert shows a blocking notification to the user
	Alert(message string)

	// ClearFileInput empties the receipt file input
	ClearFileInput()

	// ShowReceiptModal opens the receipt overlay; an empty URL shows an empty overlay
	ShowReceiptModal(fileURL string)
}

// NavigateFunc moves the host application to pathname
type NavigateFunc func(pathname string)
