// Package mp4source provides a packetized bitstream source reading HEVC
// samples from fragmented MP4 files.
//
// MP4 video samples carry NAL units behind 4-byte big-endian length
// prefixes, which is exactly the decoder's packetized input mode. Codec
// parameter sets (VPS/SPS/PPS) from the hvcC sample entry are emitted as a
// leading length-prefixed unit so they reach the engine before the first
// sample.
package mp4source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/streamdec/pkg/ports"
)

// Source implements ports.BitstreamSource over a fragmented MP4 file.
type Source struct {
	units []ports.CompressedUnit
	state *ports.InputState
	info  Info
	next  int
}

// Info describes the video track the source reads from.
type Info struct {
	TrackID     uint32
	Codec       string
	Timescale   uint32
	SampleCount int
	DurationMs  int64
}

// New opens an MP4 file and prepares its HEVC video track for decoding.
func New(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return NewFromReader(f)
}

// NewFromReader prepares the HEVC video track from an io.ReadSeeker.
func NewFromReader(reader io.ReadSeeker) (*Source, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	if !mp4File.IsFragmented() {
		// Progressive sample-table walking is not needed for the
		// streams we produce; fragmented is the interchange format.
		return nil, fmt.Errorf("progressive MP4 not supported, use fragmented MP4")
	}

	s := &Source{}
	trex, err := s.findVideoTrack(mp4File)
	if err != nil {
		return nil, err
	}
	if err := s.collectSamples(mp4File, trex); err != nil {
		return nil, err
	}
	return s, nil
}

// findVideoTrack locates the HEVC video track, its trex defaults and the
// out-of-band parameter sets.
func (s *Source) findVideoTrack(mp4File *mp4.File) (*mp4.TrexBox, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return nil, fmt.Errorf("no init segment found")
	}
	moov := mp4File.Init.Moov

	var trex *mp4.TrexBox
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		codec, paramSets, ok := hevcSampleEntry(trak)
		if !ok {
			continue
		}

		s.info.TrackID = trak.Tkhd.TrackID
		s.info.Codec = codec
		s.info.Timescale = 1000
		if trak.Mdia.Mdhd != nil {
			s.info.Timescale = trak.Mdia.Mdhd.Timescale
		}
		s.state = &ports.InputState{Codec: codec, ParameterSets: paramSets}
		break
	}
	if s.info.TrackID == 0 {
		return nil, fmt.Errorf("no HEVC video track found")
	}

	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == s.info.TrackID {
				trex = t
				break
			}
		}
	}

	// Prime the decoder with the parameter sets, length-prefixed like
	// every other packetized unit.
	if len(s.state.ParameterSets) > 0 {
		s.units = append(s.units, ports.CompressedUnit{
			Data: lengthPrefix(s.state.ParameterSets),
		})
	}
	return trex, nil
}

// collectSamples walks the fragments of the video track and converts each
// sample into a packetized compressed unit with a millisecond timestamp.
func (s *Source) collectSamples(mp4File *mp4.File, trex *mp4.TrexBox) error {
	timescale := uint64(s.info.Timescale)
	var lastEndTime uint64

	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != s.info.TrackID {
					continue
				}

				var baseDecodeTime uint64
				if traf.Tfdt != nil {
					baseDecodeTime = traf.Tfdt.BaseMediaDecodeTime()
				}

				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return fmt.Errorf("get samples: %w", err)
				}

				currentTime := baseDecodeTime
				for _, sample := range samples {
					s.units = append(s.units, ports.CompressedUnit{
						Data: sample.Data,
						PTS:  int64(currentTime * 1000 / timescale),
					})
					s.info.SampleCount++
					currentTime += uint64(sample.Dur)
				}
				lastEndTime = currentTime
			}
		}
	}
	s.info.DurationMs = int64(lastEndTime * 1000 / timescale)
	return nil
}

// Mode returns ModePacketized: MP4 samples are length-prefixed.
func (s *Source) Mode() ports.InputMode {
	return ports.ModePacketized
}

// InputState returns the track's codec metadata and parameter sets.
func (s *Source) InputState() *ports.InputState {
	return s.state
}

// NextUnit returns the next sample, or io.EOF after the last one.
func (s *Source) NextUnit() (ports.CompressedUnit, error) {
	if s.next >= len(s.units) {
		return ports.CompressedUnit{}, io.EOF
	}
	unit := s.units[s.next]
	s.next++
	return unit, nil
}

// Info returns track metadata for informational output.
func (s *Source) Info() Info {
	return s.info
}

// Close releases the source. Sample data is already in memory, so there is
// nothing to tear down.
func (s *Source) Close() error {
	return nil
}

var _ ports.BitstreamSource = (*Source)(nil)

// hevcSampleEntry extracts the codec name and hvcC parameter-set NAL units
// from a track's sample description.
func hevcSampleEntry(trak *mp4.TrakBox) (string, [][]byte, bool) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return "", nil, false
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "hvc1", "hev1":
			var paramSets [][]byte
			if visual, ok := child.(*mp4.VisualSampleEntryBox); ok && visual.HvcC != nil {
				for _, arr := range visual.HvcC.NaluArrays {
					paramSets = append(paramSets, arr.Nalus...)
				}
			}
			return child.Type(), paramSets, true
		}
	}
	return "", nil, false
}

// lengthPrefix concatenates NAL units behind 4-byte big-endian length
// fields.
func lengthPrefix(nalus [][]byte) []byte {
	size := 0
	for _, nalu := range nalus {
		size += 4 + len(nalu)
	}
	buf := make([]byte, 0, size)
	for _, nalu := range nalus {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(nalu)))
		buf = append(buf, length[:]...)
		buf = append(buf, nalu...)
	}
	return buf
}
