package cgen

// BytesPerLine is how many array elements are written before a line break.
// The breaks are cosmetic.
const BytesPerLine = 16

const hexDigits = "0123456789ABCDEF"

// ByteArray renders everything written to it as C hex literals,
// "0x48, 0x65, ...", breaking the line after every BytesPerLine bytes.
// The line position carries across Write calls, so the output does not
// depend on how the input was chunked.
type ByteArray struct {
	w     *Writer
	count int64
	line  []byte
}

func (w *Writer) ByteArray() *ByteArray {
	return &ByteArray{w: w, line: make([]byte, 0, BytesPerLine*6+1)}
}

func (a *ByteArray) Write(p []byte) (int, error) {
	for i, c := range p {
		a.line = append(a.line, '0', 'x', hexDigits[c>>4], hexDigits[c&0x0f], ',', ' ')
		a.count++
		if a.count%BytesPerLine == 0 {
			a.line = append(a.line, '\n')
			if _, err := a.w.Write(a.line); err != nil {
				return i, err
			}
			a.line = a.line[:0]
		}
	}
	return len(p), nil
}

// Close flushes a partial last line. It does not close the Writer.
func (a *ByteArray) Close() error {
	if len(a.line) > 0 {
		if _, err := a.w.Write(a.line); err != nil {
			return err
		}
		a.line = a.line[:0]
	}
	return a.w.Err()
}

// Len returns the number of bytes rendered so far.
func (a *ByteArray) Len() int64 {
	return a.count
}
