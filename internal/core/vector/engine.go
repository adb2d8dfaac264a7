package vector

import (
	"strings"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"

	qrcode "github.com/skip2/go-qrcode"
	rscqr "rsc.io/qr"
)

// QuietZone is the module count of blank border around a symbol
const QuietZone = 4

// Engine names accepted by EngineByName
const (
	EngineSkip2 = "skip2"
	EngineRSC   = "rsc"
)

// MatrixEngine produces the module matrix for a payload, quiet zone included.
// Implementations wrap an external QR library; true means a dark module
type MatrixEngine interface {
	Name() string
	Matrix(payload string, level qr.Level) ([][]bool, error)
}

// EngineByName resolves a configured engine name, empty means skip2
func EngineByName(name string) (MatrixEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineSkip2:
		return Skip2{}, nil
	case EngineRSC:
		return RSC{}, nil
	}
	return nil, perr.InvalidArgf("unknown qr engine %q", name)
}

// Skip2 uses github.com/skip2/go-qrcode, whose bitmap already carries the quiet zone
type Skip2 struct{}

// Name implements MatrixEngine
func (Skip2) Name() string { return EngineSkip2 }

// Matrix implements MatrixEngine
func (Skip2) Matrix(payload string, level qr.Level) ([][]bool, error) {
	code, err := qrcode.New(payload, skip2Level(level))
	if err != nil {
		return nil, err
	}
	return code.Bitmap(), nil
}

func skip2Level(l qr.Level) qrcode.RecoveryLevel {
	switch l {
	case qr.LevelL:
		return qrcode.Low
	case qr.LevelQ:
		return qrcode.High
	case qr.LevelH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// RSC uses rsc.io/qr and pads the bare symbol with the quiet zone
type RSC struct{}

// Name implements MatrixEngine
func (RSC) Name() string { return EngineRSC }

// Matrix implements MatrixEngine
func (RSC) Matrix(payload string, level qr.Level) ([][]bool, error) {
	code, err := rscqr.Encode(payload, rscLevel(level))
	if err != nil {
		return nil, err
	}
	n := code.Size + 2*QuietZone
	m := make([][]bool, n)
	for y := range m {
		m[y] = make([]bool, n)
		for x := range m[y] {
			m[y][x] = code.Black(x-QuietZone, y-QuietZone)
		}
	}
	return m, nil
}

func rscLevel(l qr.Level) rscqr.Level {
	switch l {
	case qr.LevelL:
		return rscqr.L
	case qr.LevelQ:
		return rscqr.Q
	case qr.LevelH:
		return rscqr.H
	default:
		return rscqr.M
	}
}
