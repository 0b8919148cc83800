package display

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// GC9A01 panel geometry. The prop uses two 1.28" round 240x240 modules.
const (
	GC9A01Width  = 240
	GC9A01Height = 240
)

// spiChunk is the largest single write the spidev interface accepts.
const spiChunk = 4096

// GC9A01Config describes one display's wiring. Chip select is the SPI
// device node's hardware CS (CE0 for the left eye, CE1 for the right);
// DC and RST are plain GPIO lines.
type GC9A01Config struct {
	Port  string // SPI device, e.g. "/dev/spidev0.0"
	DC    string // Data/command GPIO name, e.g. "GPIO25"
	RST   string // Reset GPIO name, e.g. "GPIO27"
	Speed physic.Frequency
}

// DefaultGC9A01Config returns wiring defaults for the given SPI node
// and control pins at the panel's stable 40MHz clock.
func DefaultGC9A01Config(port, dc, rst string) GC9A01Config {
	return GC9A01Config{
		Port:  port,
		DC:    dc,
		RST:   rst,
		Speed: 40 * physic.MegaHertz,
	}
}

var hostInit sync.Once

// GC9A01 is the SPI transport for one round display.
type GC9A01 struct {
	mu   sync.Mutex
	port spi.PortCloser
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
}

// OpenGC9A01 opens the SPI port, claims the control pins, and runs the
// panel's init sequence. Errors here are fatal to the channel but not
// to the process: the controller keeps animating the other eye.
func OpenGC9A01(cfg GC9A01Config) (*GC9A01, error) {
	var initErr error
	hostInit.Do(func() {
		_, initErr = host.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("periph host init: %w", initErr)
	}

	dc := gpioreg.ByName(cfg.DC)
	if dc == nil {
		return nil, fmt.Errorf("gpio %q not found", cfg.DC)
	}
	rst := gpioreg.ByName(cfg.RST)
	if rst == nil {
		return nil, fmt.Errorf("gpio %q not found", cfg.RST)
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", cfg.Port, err)
	}
	conn, err := port.Connect(cfg.Speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi %q: %w", cfg.Port, err)
	}

	d := &GC9A01{port: port, conn: conn, dc: dc, rst: rst}
	if err := d.init(); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

// init pulses reset and plays the panel's wake-up command sequence.
func (d *GC9A01) init() error {
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("reset low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("reset high: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	for _, step := range gc9a01Init {
		if err := d.command(step.cmd); err != nil {
			return err
		}
		if len(step.data) > 0 {
			if err := d.data(step.data); err != nil {
				return err
			}
		}
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

// WriteFrame pushes one full RGB565 frame to the panel RAM.
func (d *GC9A01) WriteFrame(pix []byte) error {
	if len(pix) != GC9A01Width*GC9A01Height*2 {
		return fmt.Errorf("frame is %d bytes, want %d", len(pix), GC9A01Width*GC9A01Height*2)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Full-screen window, then RAM write.
	if err := d.command(0x2A); err != nil { // Column address set
		return err
	}
	if err := d.data([]byte{0x00, 0x00, 0x00, GC9A01Width - 1}); err != nil {
		return err
	}
	if err := d.command(0x2B); err != nil { // Row address set
		return err
	}
	if err := d.data([]byte{0x00, 0x00, 0x00, GC9A01Height - 1}); err != nil {
		return err
	}
	if err := d.command(0x2C); err != nil { // Memory write
		return err
	}

	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dc high: %w", err)
	}
	for off := 0; off < len(pix); off += spiChunk {
		end := off + spiChunk
		if end > len(pix) {
			end = len(pix)
		}
		if err := d.conn.Tx(pix[off:end], nil); err != nil {
			return fmt.Errorf("pixel write: %w", err)
		}
	}
	return nil
}

// Close releases the SPI port. The control pins are left as-is.
func (d *GC9A01) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.port.Close()
}

func (d *GC9A01) command(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("dc low: %w", err)
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("command 0x%02X: %w", cmd, err)
	}
	return nil
}

func (d *GC9A01) data(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dc high: %w", err)
	}
	if err := d.conn.Tx(b, nil); err != nil {
		return fmt.Errorf("data write: %w", err)
	}
	return nil
}

// gc9a01Init is the panel bring-up sequence: vendor magic registers,
// then pixel format (16bpp), inversion, sleep-out, and display-on.
var gc9a01Init = []struct {
	cmd  byte
	data []byte
}{
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0xFE, nil},
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0x84, []byte{0x40}},
	{0x85, []byte{0xFF}},
	{0x86, []byte{0xFF}},
	{0x87, []byte{0xFF}},
	{0x88, []byte{0x0A}},
	{0x89, []byte{0x21}},
	{0x8A, []byte{0x00}},
	{0x8B, []byte{0x80}},
	{0x8C, []byte{0x01}},
	{0x8D, []byte{0x01}},
	{0x8E, []byte{0xFF}},
	{0x8F, []byte{0xFF}},
	{0xB6, []byte{0x00, 0x20}},
	{0x36, []byte{0x08}}, // Memory access: BGR order
	{0x3A, []byte{0x05}}, // Pixel format: RGB565
	{0x90, []byte{0x08, 0x08, 0x08, 0x08}},
	{0xBD, []byte{0x06}},
	{0xBC, []byte{0x00}},
	{0xFF, []byte{0x60, 0x01, 0x04}},
	{0xC3, []byte{0x13}},
	{0xC4, []byte{0x13}},
	{0xC9, []byte{0x22}},
	{0xBE, []byte{0x11}},
	{0xE1, []byte{0x10, 0x0E}},
	{0xDF, []byte{0x21, 0x0C, 0x02}},
	{0xF0, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF1, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xF2, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF3, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xED, []byte{0x1B, 0x0B}},
	{0xAE, []byte{0x77}},
	{0xCD, []byte{0x63}},
	{0x70, []byte{0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03}},
	{0xE8, []byte{0x34}},
	{0x62, []byte{0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70}},
	{0x63, []byte{0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70}},
	{0x64, []byte{0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07}},
	{0x66, []byte{0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00}},
	{0x67, []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98}},
	{0x74, []byte{0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00}},
	{0x98, []byte{0x3E, 0x07}},
	{0x35, nil}, // Tearing effect on
	{0x21, nil}, // Display inversion on
	{0x11, nil}, // Sleep out
	{0x29, nil}, // Display on
}
