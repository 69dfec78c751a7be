package http

// pageDocument collects what a service did to the screen during one request
type pageDocument struct {
	alerts       []string
	inputCleared bool
	modalOpen    bool
	modalURL     string
}

func (d *pageDocument) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

func (d *pageDocument) ClearFileInput() {
	d.inputCleared = true
}

func (d *pageDocument) ShowReceiptModal(fileURL string) {
	d.modalOpen = true
	d.modalURL = fileURL
}

// navigator turns a service navigation into a redirect of the current request
type navigator struct {
	target string
}

func (n *navigator) Navigate(pathname string) {
	n.target = pathname
}

func (n *navigator) redirected() bool {
	return n.target != ""
}
