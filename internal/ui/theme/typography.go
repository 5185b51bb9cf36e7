package theme

type Typography struct {
	Title      int32
	Header     int32
	Body       int32
	Small      int32
	Log        int32
	LineFactor float32
}

var Type = Typography{
	Title:      30,
	Header:     21,
	Body:       18,
	Small:      15,
	Log:        16,
	LineFactor: 1.4,
}

// LineHeight is the baseline-to-baseline distance for a font size.
func LineHeight(size int32) int32 {
	if size < 1 {
		size = 1
	}
	return int32(float32(size)*Type.LineFactor + 0.5)
}
