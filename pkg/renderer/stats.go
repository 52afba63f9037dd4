package renderer

import "time"

// RenderStats contains statistics about rendering one camera
type RenderStats struct {
	CameraID     int           // Camera that was rendered
	Width        int           // Horizontal resolution
	Height       int           // Vertical resolution
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of primary rays traced
	Workers      int           // Number of scan-line workers used
	Duration     time.Duration // Wall-clock render time
}

// SamplesPerPixel returns the average number of samples per pixel
func (s RenderStats) SamplesPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
