// Package de265engine provides an HEVC decoding engine using libde265.
package de265engine

/*
#cgo pkg-config: libde265
#include <libde265/de265.h>
#include <stdlib.h>

// Get image plane data together with its stride.
static const uint8_t* get_plane(const struct de265_image *img, int plane, int *stride) {
    return de265_get_image_plane(img, plane, stride);
}

static int get_width(const struct de265_image *img, int plane) {
    return de265_get_image_width(img, plane);
}

static int get_height(const struct de265_image *img, int plane) {
    return de265_get_image_height(img, plane);
}

static int64_t get_pts(const struct de265_image *img) {
    return de265_get_image_PTS(img);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/user/streamdec/pkg/ports"
)

// engineErrorBase offsets libde265 error codes past the shared
// flow-control status values so they survive the round trip through
// ports.Status and ErrorText.
const engineErrorBase = 1000

// Engine implements ports.DecodeEngine using libde265.
type Engine struct {
	ctx *C.de265_decoder_context
}

// New creates a libde265 decoding engine.
func New() (*Engine, error) {
	ctx := C.de265_new_decoder()
	if ctx == nil {
		return nil, fmt.Errorf("de265engine: failed to allocate decoder context")
	}
	return &Engine{ctx: ctx}, nil
}

// PushData hands start-code-delimited bitstream bytes to the decoder.
func (e *Engine) PushData(data []byte, pts int64) ports.Status {
	if len(data) == 0 {
		return ports.StatusOK
	}
	err := C.de265_push_data(e.ctx, unsafe.Pointer(&data[0]), C.int(len(data)),
		C.de265_PTS(pts), nil)
	return mapStatus(err)
}

// Decode advances the decoder.
func (e *Engine) Decode() ports.Status {
	var more C.int
	return mapStatus(C.de265_decode(e.ctx, &more))
}

// PushEndOfStream marks the end of input so pictures held back for
// reordering can be decoded out.
func (e *Engine) PushEndOfStream() ports.Status {
	return mapStatus(C.de265_flush_data(e.ctx))
}

// PeekNextPicture returns the head of the output queue without removing it.
func (e *Engine) PeekNextPicture() ports.Picture {
	img := C.de265_peek_next_picture(e.ctx)
	if img == nil {
		return nil
	}
	return &picture{img: img}
}

// GetNextPicture removes and returns the head of the output queue.
func (e *Engine) GetNextPicture() ports.Picture {
	img := C.de265_get_next_picture(e.ctx)
	if img == nil {
		return nil
	}
	return &picture{img: img}
}

// NextWarning returns the next queued decoder warning.
func (e *Engine) NextWarning() (ports.Status, bool) {
	w := C.de265_get_warning(e.ctx)
	if w == C.DE265_OK {
		return ports.StatusOK, false
	}
	return ports.Status(engineErrorBase + int(w)), true
}

// ErrorText returns libde265's description for a status code.
func (e *Engine) ErrorText(code ports.Status) string {
	return C.GoString(C.de265_get_error_text(C.de265_error(int(code) - engineErrorBase)))
}

// StartWorkerThreads starts n decoder worker threads.
func (e *Engine) StartWorkerThreads(n int) error {
	if err := C.de265_start_worker_threads(e.ctx, C.int(n)); err != C.DE265_OK {
		return fmt.Errorf("de265engine: start worker threads: %s",
			C.GoString(C.de265_get_error_text(err)))
	}
	return nil
}

// Free releases the decoder context.
func (e *Engine) Free() {
	if e.ctx != nil {
		C.de265_free_decoder(e.ctx)
		e.ctx = nil
	}
}

func mapStatus(err C.de265_error) ports.Status {
	switch err {
	case C.DE265_OK:
		return ports.StatusOK
	case C.DE265_ERROR_IMAGE_BUFFER_FULL:
		return ports.StatusBufferFull
	case C.DE265_ERROR_WAITING_FOR_INPUT_DATA:
		return ports.StatusNeedMoreInput
	default:
		return ports.Status(engineErrorBase + int(err))
	}
}

var _ ports.DecodeEngine = (*Engine)(nil)

// picture wraps a decoder-owned de265 image. Plane memory stays valid
// until the decoder recycles the picture slot, which happens after the
// adapter has finished its copy.
type picture struct {
	img *C.struct_de265_image
}

func (p *picture) Width(plane int) int {
	return int(C.get_width(p.img, C.int(plane)))
}

func (p *picture) Height(plane int) int {
	return int(C.get_height(p.img, C.int(plane)))
}

func (p *picture) Plane(plane int) ([]byte, int) {
	var stride C.int
	data := C.get_plane(p.img, C.int(plane), &stride)
	if data == nil {
		return nil, 0
	}
	size := int(stride) * p.Height(plane)
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), size), int(stride)
}

func (p *picture) PTS() int64 {
	return int64(C.get_pts(p.img))
}

// Release is a no-op: libde265 keeps ownership of picture memory and
// recycles it internally once the picture leaves the output queue.
func (p *picture) Release() {}

var _ ports.Picture = (*picture)(nil)
