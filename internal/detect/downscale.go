package detect

// DefaultEffectiveWidth is the width frames are downscaled towards before
// scoring. Scoring is insensitive to resolution, so decoding at a fraction of
// native size buys a large speedup for free.
const DefaultEffectiveWidth = 256

// ComputeDownscaleFactor returns the integer factor to shrink frames of the
// given width by so the result stays at or above effectiveWidth. Frames
// already narrower than effectiveWidth are left alone.
func ComputeDownscaleFactor(frameWidth, effectiveWidth int) int {
	if effectiveWidth <= 0 {
		effectiveWidth = DefaultEffectiveWidth
	}
	if frameWidth < effectiveWidth {
		return 1
	}
	return frameWidth / effectiveWidth
}
