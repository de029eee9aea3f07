// Package client implements the BSMP command engine, handshake and
// command surface: spec §4.C, §4.E and §4.F. A Client is single-owner
// and is not safe for concurrent use (spec §5); callers serialize
// their own access.
package client

import (
	"context"
	"fmt"

	"github.com/blang/semver"
	lru "github.com/hashicorp/golang-lru"
	"github.com/op/go-logging"

	"github.com/lerwys/libbsmp/catalog"
	"github.com/lerwys/libbsmp/protocol"
	"github.com/lerwys/libbsmp/transport"
)

// Version is the server's negotiated protocol version (spec §3).
type Version struct {
	Major, Minor, Revision uint8
}

// String formats "M.mm.rrr", per spec §4.E.
func (v Version) String() string {
	return fmt.Sprintf("%d.%02d.%03d", v.Major, v.Minor, v.Revision)
}

// Semver converts v to a semver.Version for comparison against a
// client-side minimum-supported-version check, the way
// daemon/client.go compares the running krd's version against
// version.CURRENT_VERSION.
func (v Version) Semver() semver.Version {
	return semver.Version{Major: uint64(v.Major), Minor: uint64(v.Minor), Patch: uint64(v.Revision)}
}

// AtLeast reports whether v is >= min, using semver comparison.
func (v Version) AtLeast(min Version) bool {
	return v.Semver().Compare(min.Semver()) >= 0
}

// Client drives one BSMP server over a single Transport. Construct
// with New, populate the catalog with Init, then use the command
// surface methods.
type Client struct {
	transport transport.Transport
	log       *logging.Logger

	catalog     *catalog.Catalog
	version     Version
	initialized bool

	// curveCache, when non-nil, short-circuits CurveBlockRequest for
	// an unmodified (curveID, offset) pair already fetched this
	// session (SPEC_FULL.md §3.5). Writes to a curve invalidate its
	// cached blocks.
	curveCache *lru.Cache
}

type curveBlockKey struct {
	curveID uint8
	offset  uint16
}

// New constructs a Client over t, logging through log. It fails only
// if either argument is nil (spec §6). curveCacheSize bounds the
// optional curve-block read cache; 0 disables it.
func New(t transport.Transport, log *logging.Logger, curveCacheSize int) (*Client, error) {
	if t == nil || log == nil {
		return nil, ErrParamInvalid
	}
	c := &Client{
		transport: t,
		log:       log,
		catalog:   catalog.New(),
	}
	if curveCacheSize > 0 {
		cache, err := lru.New(curveCacheSize)
		if err != nil {
			return nil, err
		}
		c.curveCache = cache
	}
	return c, nil
}

// Catalog exposes the read-only entity catalog (spec §4.D accessors).
func (c *Client) Catalog() *catalog.Catalog { return c.catalog }

// Version returns the version negotiated during Init.
func (c *Client) Version() Version { return c.version }

// Initialized reports whether Init has completed successfully.
func (c *Client) Initialized() bool { return c.initialized }

// exchange sends opcode+payload and returns the parsed response,
// spec §4.C: one request, one response, no retries, no timeouts at
// this layer.
func (c *Client) exchange(ctx context.Context, opcode protocol.Opcode, payload []byte) (protocol.Opcode, []byte, error) {
	request := protocol.EncodeFrame(opcode, payload)
	if err := c.transport.Send(ctx, request); err != nil {
		c.log.Error("bsmp: send failed:", err)
		return 0, nil, fmt.Errorf("%w: send: %v", ErrComm, err)
	}

	buf := make([]byte, protocol.MaxMessage)
	n, err := c.transport.Recv(ctx, buf)
	if err != nil {
		c.log.Error("bsmp: recv failed:", err)
		return 0, nil, fmt.Errorf("%w: recv: %v", ErrComm, err)
	}

	respOpcode, respPayload, err := protocol.DecodeFrame(buf[:n])
	if err != nil {
		c.log.Error("bsmp: malformed response:", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrComm, err)
	}
	return respOpcode, respPayload, nil
}

// expect issues the exchange and requires the response opcode to be
// exactly want, otherwise failing with ErrComm.
func (c *Client) expect(ctx context.Context, reqOpcode protocol.Opcode, payload []byte, want protocol.Opcode) ([]byte, error) {
	opcode, respPayload, err := c.exchange(ctx, reqOpcode, payload)
	if err != nil {
		return nil, err
	}
	if opcode != want {
		return nil, fmt.Errorf("%w: expected opcode %#x, got %#x", ErrComm, want, opcode)
	}
	return respPayload, nil
}

func (c *Client) invalidateCurveCache(curveID uint8) {
	if c.curveCache == nil {
		return
	}
	for _, key := range c.curveCache.Keys() {
		if k, ok := key.(curveBlockKey); ok && k.curveID == curveID {
			c.curveCache.Remove(key)
		}
	}
}
