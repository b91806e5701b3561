package entity

// Frame is one decoded video frame in packed RGB24 layout
// (3 bytes per pixel, row-major, len(Pix) == Width*Height*3).
type Frame struct {
	Index    int
	Width    int
	Height   int
	Pix      []byte
	Position Timecode
}
