//go:build linux

package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/paypal/gatt"
	uuid "github.com/satori/go.uuid"
)

// BLETransport implements Transport over a single GATT characteristic
// pair (one for writes, one for notify-driven reads), reimplementing
// the teacher's BluetoothDriverI shape (AddService/RemoveService/
// Write/ReadChan/Stop, krd/bluetooth.go) as a real Go GATT client
// instead of the teacher's cgo bridge into a platform Bluetooth
// framework.
//
// Each BSMP frame is assumed to fit in one notification; a server
// that fragments frames across notifications needs a different
// transport.
type BLETransport struct {
	device     gatt.Device
	writeChar  *gatt.Characteristic
	periph     gatt.Peripheral
	frames     chan []byte
	connected  chan error
	mu         sync.Mutex
}

// DialBLE scans for a peripheral advertising serviceUUID, connects,
// and discovers writeCharUUID/notifyCharUUID on it.
func DialBLE(ctx context.Context, serviceUUID, writeCharUUID, notifyCharUUID uuid.UUID) (*BLETransport, error) {
	t := &BLETransport{
		frames:    make(chan []byte, 16),
		connected: make(chan error, 1),
	}

	device, err := gatt.NewDevice()
	if err != nil {
		return nil, fmt.Errorf("bsmp/transport: open BLE device: %w", err)
	}
	t.device = device

	svc := gatt.MustParseUUID(serviceUUID.String())

	device.Handle(
		gatt.PeripheralDiscovered(func(p gatt.Peripheral, a *gatt.Advertisement, rssi int) {
			p.Device().StopScanning()
			p.Device().Connect(p)
		}),
		gatt.PeripheralConnected(func(p gatt.Peripheral, err error) {
			t.periph = p
			t.connected <- t.discoverCharacteristics(p, writeCharUUID, notifyCharUUID)
		}),
		gatt.PeripheralDisconnected(func(p gatt.Peripheral, err error) {}),
	)
	device.Init(func(d gatt.Device, s gatt.State) {
		if s == gatt.StatePoweredOn {
			d.Scan([]gatt.UUID{svc}, false)
		} else {
			d.StopScanning()
		}
	})

	select {
	case err := <-t.connected:
		if err != nil {
			return nil, err
		}
		return t, nil
	case <-ctx.Done():
		device.Stop()
		return nil, ctx.Err()
	case <-time.After(30 * time.Second):
		device.Stop()
		return nil, fmt.Errorf("bsmp/transport: timed out connecting to BLE peripheral")
	}
}

func (t *BLETransport) discoverCharacteristics(p gatt.Peripheral, writeCharUUID, notifyCharUUID uuid.UUID) error {
	services, err := p.DiscoverServices(nil)
	if err != nil {
		return err
	}
	writeUUID := gatt.MustParseUUID(writeCharUUID.String())
	notifyUUID := gatt.MustParseUUID(notifyCharUUID.String())

	for _, s := range services {
		chars, err := p.DiscoverCharacteristics(nil, s)
		if err != nil {
			return err
		}
		for _, c := range chars {
			switch {
			case c.UUID().Equal(writeUUID):
				t.writeChar = c
			case c.UUID().Equal(notifyUUID):
				if err := p.SetNotifyValue(c, func(c *gatt.Characteristic, b []byte, err error) {
					if err != nil {
						return
					}
					frame := make([]byte, len(b))
					copy(frame, b)
					select {
					case t.frames <- frame:
					default:
					}
				}); err != nil {
					return err
				}
			}
		}
	}
	if t.writeChar == nil {
		return fmt.Errorf("bsmp/transport: write characteristic not found")
	}
	return nil
}

func (t *BLETransport) Send(ctx context.Context, buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.periph.WriteCharacteristic(t.writeChar, buf, false)
}

func (t *BLETransport) Recv(ctx context.Context, buf []byte) (int, error) {
	select {
	case frame := <-t.frames:
		if len(frame) > len(buf) {
			return 0, fmt.Errorf("bsmp/transport: frame of %d bytes does not fit in %d byte buffer", len(frame), len(buf))
		}
		return copy(buf, frame), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Stop disconnects and releases the underlying GATT device, mirroring
// BluetoothDriverI.Stop.
func (t *BLETransport) Stop() {
	if t.periph != nil {
		t.device.CancelConnection(t.periph)
	}
	t.device.Stop()
}
