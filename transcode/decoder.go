package transcode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/spectrogram"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // mono (or first-channel) samples in [-1, 1)
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`  // channel count of the source
	BitDepth   int           `json:"bit_depth"` // bit depth of the source
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	MixDown     bool          `json:"mix_down"`     // average all channels; otherwise keep channel 0
	MaxDuration time.Duration `json:"max_duration"` // 0 means no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		MixDown:     true,
		MaxDuration: 0,
	}
}

// Decoder reads PCM WAV files into AudioData
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig, logger logging.Logger) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config, logger: logging.OrNop(logger)}
}

// DecodeFile decodes a WAV file from disk
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	return d.DecodeReader(f, filename)
}

// DecodeReader decodes WAV data from r. source is used for logging and naming.
func (d *Decoder) DecodeReader(r io.ReadSeeker, source string) (*AudioData, error) {
	logger := d.logger.WithFields(logging.Fields{
		"component": "audio_decoder",
		"source":    source,
	})

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		err := fmt.Errorf("invalid wav file")
		logger.Error(err, "Failed to validate input")
		return nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		logger.Error(err, "Failed to read PCM data")
		return nil, fmt.Errorf("reading pcm data: %w", err)
	}

	channels := int(dec.NumChans)
	sampleRate := int(dec.SampleRate)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || sampleRate <= 0 {
		return nil, fmt.Errorf("unsupported wav format: %d channels at %d Hz", channels, sampleRate)
	}

	samples := d.toMono(buf, channels, bitDepth)
	if d.config.MaxDuration > 0 {
		limit := int(d.config.MaxDuration.Seconds() * float64(sampleRate))
		if limit < len(samples) {
			samples = samples[:limit]
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded")
	}

	duration := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)

	logger.Debug("WAV decode completed", logging.Fields{
		"sample_rate":     sampleRate,
		"input_channels":  channels,
		"bit_depth":       bitDepth,
		"output_samples":  len(samples),
		"output_duration": duration.Seconds(),
	})

	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   duration,
		Source:     source,
	}, nil
}

// toMono converts interleaved integer PCM to float samples in [-1, 1).
func (d *Decoder) toMono(buf *audio.IntBuffer, channels, bitDepth int) []float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := range frames {
		frame := buf.Data[i*channels : (i+1)*channels]
		if !d.config.MixDown {
			out[i] = float64(frame[0]) * scale
			continue
		}
		sum := 0
		for _, v := range frame {
			sum += v
		}
		out[i] = float64(sum) * scale / float64(channels)
	}
	return out
}

// Series exposes the decoded samples as a spectrogram input with t in seconds
// and amplitude in full-scale units.
func (a *AudioData) Series() *spectrogram.Samples {
	name := strings.TrimSuffix(filepath.Base(a.Source), filepath.Ext(a.Source))
	if name == "" || name == "." {
		name = "audio"
	}
	return spectrogram.NewUniformSamples(name, 1/float64(a.SampleRate), a.PCM).WithUnits("s", "FS")
}
