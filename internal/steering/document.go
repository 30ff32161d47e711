package steering

// Document is one rendered steering file. Path is relative to the project
// root; nothing here writes it to disk.
type Document struct {
	Path        string
	Body        string
	FrontMatter *FrontMatter
}

// Text renders the complete file: header, a blank line, then the body.
func (d Document) Text() (string, error) {
	if d.FrontMatter == nil {
		return d.Body, nil
	}
	head, err := d.FrontMatter.Encode()
	if err != nil {
		return "", err
	}
	return head + "\n" + d.Body, nil
}

// String is Text with encoding failures rendered as the bare body.
func (d Document) String() string {
	s, err := d.Text()
	if err != nil {
		return d.Body
	}
	return s
}
