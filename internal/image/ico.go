package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/png"
	"io"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	icoMaxSide    = 256
)

// EncodeICO packs PNG-encoded frames into a Windows icon container. Frames
// are stored as-is, in the given order, which every current browser accepts.
func EncodeICO(w io.Writer, frames [][]byte) error {
	if len(frames) == 0 {
		return errors.New("ico: no frames")
	}
	if len(frames) > 0xFFFF {
		return fmt.Errorf("ico: too many frames (%d)", len(frames))
	}

	var buf bytes.Buffer
	header := struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}{0, 1, uint16(len(frames))} //nolint:gosec // G115: bounded above
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return err
	}

	offset := uint32(icoHeaderSize + icoEntrySize*len(frames)) //nolint:gosec // G115: bounded above
	for i, frame := range frames {
		cfg, err := png.DecodeConfig(bytes.NewReader(frame))
		if err != nil {
			return fmt.Errorf("ico: frame %d is not a png: %w", i, err)
		}
		if cfg.Width > icoMaxSide || cfg.Height > icoMaxSide {
			return fmt.Errorf("ico: frame %d is %dx%d, max %d", i, cfg.Width, cfg.Height, icoMaxSide)
		}

		entry := struct {
			Width, Height uint8
			Colors        uint8
			Reserved      uint8
			Planes        uint16
			BitCount      uint16
			Size          uint32
			Offset        uint32
		}{
			Width:    uint8(cfg.Width % icoMaxSide),  //nolint:gosec // G115: 256 is stored as 0
			Height:   uint8(cfg.Height % icoMaxSide), //nolint:gosec // G115: 256 is stored as 0
			Planes:   1,
			BitCount: 32,
			Size:     uint32(len(frame)), //nolint:gosec // G115: frame sizes are small
			Offset:   offset,
		}
		if err := binary.Write(&buf, binary.LittleEndian, entry); err != nil {
			return err
		}
		offset += entry.Size
	}

	for _, frame := range frames {
		buf.Write(frame)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
