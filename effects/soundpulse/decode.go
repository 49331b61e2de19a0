// This file is part of Keyleds.
//
// Keyleds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Keyleds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Keyleds.  If not, see <https://www.gnu.org/licenses/>.

package soundpulse

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/keyleds/curated"
)

// Sentinel error patterns.
const (
	UnsupportedFile = "soundpulse: unsupported file type (%s)"
	DecodeFailed    = "soundpulse: %s: %v"
)

// the duration of one entry in the envelope.
const window = 10 * time.Millisecond

// pcmData is mono sample data. for stereo files only the left channel is kept.
type pcmData struct {
	sampleRate float64
	data       []float32
}

// load decodes a WAV or MP3 file. the file type is decided by the file
// extension.
func load(path string) (pcmData, error) {
	f, err := os.Open(path)
	if err != nil {
		return pcmData{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	}

	return pcmData{}, curated.Errorf(UnsupportedFile, filepath.Ext(path))
}

func decodeWAV(r io.ReadSeeker) (pcmData, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return pcmData{}, curated.Errorf(DecodeFailed, "wav", "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcmData{}, curated.Errorf(DecodeFailed, "wav", err)
	}

	return pcmData{
		sampleRate: float64(dec.SampleRate),
		data:       firstChannel(buf.AsFloat32Buffer(), int(dec.NumChans)),
	}, nil
}

// firstChannel returns the samples of the first channel of interleaved data.
func firstChannel(buf *audio.Float32Buffer, chans int) []float32 {
	if chans < 1 {
		chans = 1
	}
	d := make([]float32, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		d = append(d, buf.Data[i])
	}
	return d
}

func decodeMP3(r io.Reader) (pcmData, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return pcmData{}, curated.Errorf(DecodeFailed, "mp3", err)
	}

	p := pcmData{
		sampleRate: float64(dec.SampleRate()),
	}

	// the decoded stream is always 16bit little endian stereo. four bytes per
	// sample and we only want the left channel
	chunk := make([]byte, 4096)
	for {
		// ReadFull keeps the chunks aligned to whole samples
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			p.data = append(p.data, float32(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return pcmData{}, curated.Errorf(DecodeFailed, "mp3", err)
		}
	}

	return p, nil
}

// envelope reduces the sample data to one amplitude value per window. the
// values are scaled so that the loudest window has a value of one.
func (p pcmData) envelope() []float64 {
	if p.sampleRate <= 0 || len(p.data) == 0 {
		return nil
	}

	per := int(p.sampleRate * window.Seconds())
	if per < 1 {
		per = 1
	}

	env := make([]float64, 0, len(p.data)/per+1)
	var peak float64

	for s := 0; s < len(p.data); s += per {
		e := min(s+per, len(p.data))

		// root mean square of the window
		var sum float64
		for _, v := range p.data[s:e] {
			sum += float64(v) * float64(v)
		}
		rms := math.Sqrt(sum / float64(e-s))

		env = append(env, rms)
		peak = max(peak, rms)
	}

	if peak > 0 {
		for i := range env {
			env[i] /= peak
		}
	}

	return env
}
