// Package formatdetect provides utilities for detecting the input
// container of an HEVC bitstream file.
package formatdetect

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/streamdec/pkg/ports"
)

// Container represents the detected input container.
type Container string

const (
	ContainerMP4     Container = "mp4"
	ContainerAnnexB  Container = "annexb"
	ContainerUnknown Container = "unknown"
)

// InputMode maps a container to the decoder input mode it implies.
func (c Container) InputMode() (ports.InputMode, error) {
	switch c {
	case ContainerMP4:
		return ports.ModePacketized, nil
	case ContainerAnnexB:
		return ports.ModeRaw, nil
	default:
		return ports.ModeRaw, fmt.Errorf("unknown container")
	}
}

// DetectFromFile detects the container of a bitstream file.
func DetectFromFile(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContainerUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader detects the container from an io.ReadSeeker. The reader
// is rewound afterwards so it can be handed to a source adapter.
func DetectFromReader(reader io.ReadSeeker) (Container, error) {
	head := make([]byte, 12)
	n, err := reader.Read(head)
	if err != nil && err != io.EOF {
		return ContainerUnknown, fmt.Errorf("read header: %w", err)
	}
	head = head[:n]

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return ContainerUnknown, fmt.Errorf("seek: %w", err)
	}

	switch {
	case isMP4Header(head):
		// Confirm it parses as MP4 and actually carries an HEVC track
		// rather than just starting with a plausible box size.
		if err := confirmHEVCTrack(reader); err != nil {
			return ContainerUnknown, err
		}
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return ContainerUnknown, fmt.Errorf("seek: %w", err)
		}
		return ContainerMP4, nil
	case isAnnexBHeader(head):
		return ContainerAnnexB, nil
	default:
		return ContainerUnknown, fmt.Errorf("unrecognized input format")
	}
}

// DetectFromBytes detects the container from in-memory data.
func DetectFromBytes(data []byte) (Container, error) {
	return DetectFromReader(bytes.NewReader(data))
}

// isMP4Header reports whether the first bytes look like an MP4 box header
// with an ftyp or styp brand.
func isMP4Header(head []byte) bool {
	if len(head) < 8 {
		return false
	}
	boxType := string(head[4:8])
	return boxType == "ftyp" || boxType == "styp" || boxType == "moov"
}

// isAnnexBHeader reports whether the stream begins with a NAL start code.
func isAnnexBHeader(head []byte) bool {
	return bytes.HasPrefix(head, []byte{0, 0, 0, 1}) ||
		bytes.HasPrefix(head, []byte{0, 0, 1})
}

func confirmHEVCTrack(reader io.ReadSeeker) error {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return fmt.Errorf("decode mp4: %w", err)
	}

	for _, trak := range videoTraks(mp4File) {
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			switch child.Type() {
			case "hvc1", "hev1":
				return nil
			}
		}
	}
	return fmt.Errorf("no HEVC video track found")
}

func videoTraks(mp4File *mp4.File) []*mp4.TrakBox {
	var traks []*mp4.TrakBox
	var moovs []*mp4.MoovBox
	if mp4File.Init != nil && mp4File.Init.Moov != nil {
		moovs = append(moovs, mp4File.Init.Moov)
	}
	if mp4File.Moov != nil {
		moovs = append(moovs, mp4File.Moov)
	}
	for _, moov := range moovs {
		for _, trak := range moov.Traks {
			if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
				continue
			}
			traks = append(traks, trak)
		}
	}
	return traks
}
