// Package pixoo speaks the Divoom Pixoo64 HTTP command protocol. The
// device accepts JSON commands on /post; animations are uploaded one
// base64-encoded RGB frame at a time and looped natively by the device.
package pixoo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"
)

// Display is the device frame size. The Pixoo64 only accepts 64px frames
// on this endpoint.
const displaySize = 64

const defaultRequestTimeout = 10 * time.Second

// Client drives a single Pixoo64 over its local HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	picID      int // animation upload counter, device keys uploads by it
}

// NewClient creates a client for the device at addr (host or host:port).
func NewClient(addr string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    "http://" + addr + "/post",
		timeout:    defaultRequestTimeout,
		picID:      1,
	}
}

// commandReply is the device's standard response envelope.
type commandReply struct {
	ErrorCode int `json:"error_code"`
}

// post sends one command object and checks the device error code.
func (c *Client) post(ctx context.Context, payload map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("device returned status %d", resp.StatusCode)
	}

	var reply commandReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("failed to decode device reply: %w", err)
	}
	if reply.ErrorCode != 0 {
		return fmt.Errorf("device rejected %v command: error_code %d", payload["Command"], reply.ErrorCode)
	}

	return nil
}

// SetBrightness sets the panel brightness, 0-100.
func (c *Client) SetBrightness(ctx context.Context, pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("brightness %d out of range 0-100", pct)
	}
	return c.post(ctx, map[string]any{
		"Command":    "Channel/SetBrightness",
		"Brightness": pct,
	})
}

// SendAnimation uploads a looping animation. The device's animation slot
// is reset first, then each frame is posted with a shared PicID; the
// device starts looping once the last frame arrives.
func (c *Client) SendAnimation(ctx context.Context, frames []*image.RGBA, frameSpeedMs int) error {
	if len(frames) == 0 {
		return fmt.Errorf("animation has no frames")
	}

	if err := c.post(ctx, map[string]any{"Command": "Draw/ResetHttpGifId"}); err != nil {
		return fmt.Errorf("failed to reset animation slot: %w", err)
	}

	picID := c.picID
	c.picID++

	for i, frame := range frames {
		data, err := encodeFrame(frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		err = c.post(ctx, map[string]any{
			"Command":   "Draw/SendHttpGif",
			"PicNum":    len(frames),
			"PicWidth":  displaySize,
			"PicOffset": i,
			"PicID":     picID,
			"PicSpeed":  frameSpeedMs,
			"PicData":   data,
		})
		if err != nil {
			return fmt.Errorf("failed to upload frame %d/%d: %w", i+1, len(frames), err)
		}
	}

	slog.Debug("Animation uploaded", "frames", len(frames), "pic_id", picID, "frame_speed_ms", frameSpeedMs)
	return nil
}

// encodeFrame packs a 64x64 frame into the base64 RGB24 byte stream the
// device expects, row-major from the top-left.
func encodeFrame(frame *image.RGBA) (string, error) {
	b := frame.Bounds()
	if b.Dx() != displaySize || b.Dy() != displaySize {
		return "", fmt.Errorf("frame is %dx%d, device needs %dx%d", b.Dx(), b.Dy(), displaySize, displaySize)
	}

	raw := make([]byte, 0, displaySize*displaySize*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := frame.RGBAAt(x, y)
			raw = append(raw, px.R, px.G, px.B)
		}
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}
