package escapemg

import (
	"crypto/rand"
	"encoding/binary"
)

// Zobrist keys, shared by every position and never modified after init.
var (
	zobristBoard       [NoPiece][128]uint64 // indexed by piece and 0x88 square
	zobristCastling    [16]uint64           // indexed by castling mask, XOR of the singleton keys
	zobristEnPassant   [128]uint64          // indexed by en passant target square
	zobristActiveColor uint64               // toggled when black is to move
)

func init() {
	initZobrist()
}

func initZobrist() {
	for p := range zobristBoard {
		for _, sq := range Squares {
			zobristBoard[p][sq] = randomKey()
		}
	}

	var single [4]uint64
	for i := range single {
		single[i] = randomKey()
	}
	for mask := range zobristCastling {
		for i, key := range single {
			if mask&(1<<i) != 0 {
				zobristCastling[mask] ^= key
			}
		}
	}

	for _, sq := range Squares {
		zobristEnPassant[sq] = randomKey()
	}

	zobristActiveColor = randomKey()
}

func randomKey() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("escapemg: zobrist seed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
