// This file is part of Gopheradvance.
//
// Gopheradvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopheradvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopheradvance.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/environment"
)

// the number of channels in the WAV file. one for each direct sound FIFO
const numChannels = 2

// WavWriter implements the hardware.AudioMixer interface.
type WavWriter struct {
	env        *environment.Environment
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(env *environment.Environment, filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf("wavwriter: %v", "no filename")
	}

	aw := &WavWriter{
		env:        env,
		filename:   filename,
		sampleRate: env.Prefs.SampleRate.Get().(int),
		buffer:     make([]int, 0),
	}

	return aw, nil
}

// SetAudio implements the hardware.AudioMixer interface.
func (aw *WavWriter) SetAudio(a, b int8) error {
	// 8bit samples are scaled to 16bit
	aw.buffer = append(aw.buffer, int(a)<<8, int(b)<<8)
	return nil
}

// NumSamples returns the number of sample pairs collected so far.
func (aw *WavWriter) NumSamples() int {
	return len(aw.buffer) / numChannels
}

// EndMixing writes the buffered audio to disk.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 16, numChannels, 1)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	aw.env.Logf("wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
