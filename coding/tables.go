// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"sync"

	"github.com/unixdj/qrenc/gf256"
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// Tables provides the static data of the QR standard.  Implementations
// must be safe for concurrent use.  Asking for a combination the
// tables have no entry for is a programming error and panics.
type Tables interface {
	// Capacity returns the number of characters of mode m that fit
	// in a code of version v and level l.
	Capacity(v Version, l Level, m Mode) int
	// Blocks returns the error correction block layout.
	Blocks(v Version, l Level) Blocks
	// Alignment returns the alignment pattern centre coordinates.
	// The slice must not be modified.
	Alignment(v Version) []int
	// VersionBits returns the 18 bit version information,
	// or 0 for versions below 7.
	VersionBits(v Version) uint32
	// FormatBits returns the 15 bit masked format information.
	FormatBits(l Level, mask int) uint16
	// Remainder returns the number of remainder bits.
	Remainder(v Version) int
	// Generator returns the generator polynomial for n check bytes
	// in the form returned by gf256.Field.Gen.
	// The slice must not be modified.
	Generator(n int) []byte
	// Field returns the Reed-Solomon field.
	Field() *gf256.Field
}

// Blocks describes the error correction block layout of a version and
// level.  Data is split into N1 blocks of Len1 bytes followed by N2
// blocks of Len2 bytes, and Check error correction bytes are computed
// for each block.
type Blocks struct {
	Check int // check bytes per block
	N1    int // number of blocks in group 1
	Len1  int // data bytes per block in group 1
	N2    int // number of blocks in group 2
	Len2  int // data bytes per block in group 2
}

// Count returns the total number of blocks.
func (b Blocks) Count() int { return b.N1 + b.N2 }

// DataBytes returns the number of data bytes.
func (b Blocks) DataBytes() int { return b.N1*b.Len1 + b.N2*b.Len2 }

// DataBits returns the number of data bits, the required length of
// the bit stream before error correction.
func (b Blocks) DataBits() int { return b.DataBytes() * 8 }

// TotalBytes returns the number of data and check bytes.
func (b Blocks) TotalBytes() int { return b.DataBytes() + b.Count()*b.Check }

// Std provides the tables of ISO/IEC 18004.
var Std Tables = stdTables{}

type stdTables struct{}

func lookupPanic(what string, args ...any) {
	panic(fmt.Sprintf("qr: no "+what+" table entry", args...))
}

func (stdTables) Capacity(v Version, l Level, m Mode) int {
	if !v.IsValid() || !l.IsValid() || !m.IsValid() {
		lookupPanic("capacity for version %d level %s mode %s", v, l, m)
	}
	return int(capacity[v][l][m])
}

func (stdTables) Blocks(v Version, l Level) Blocks {
	if !v.IsValid() || !l.IsValid() {
		lookupPanic("block for version %d level %s", v, l)
	}
	return blocks[v][l]
}

func (stdTables) Alignment(v Version) []int {
	if !v.IsValid() {
		lookupPanic("alignment for version %d", v)
	}
	return alignment[v]
}

func (stdTables) VersionBits(v Version) uint32 {
	if !v.IsValid() {
		lookupPanic("version information for version %d", v)
	}
	return vbits[v]
}

func (stdTables) FormatBits(l Level, mask int) uint16 {
	if !l.IsValid() || uint(mask) >= 8 {
		lookupPanic("format information for level %s mask %d", l, mask)
	}
	return fbits[l][mask]
}

func (stdTables) Remainder(v Version) int {
	switch {
	case !v.IsValid():
		lookupPanic("remainder for version %d", v)
	case 2 <= v && v <= 6:
		return 7
	case 14 <= v && v <= 20, 28 <= v && v <= 34:
		return 3
	case 21 <= v && v <= 27:
		return 4
	}
	return 0
}

// Generator polynomials are created the first time a check byte count
// is used.  Only counts present in the block table have an entry.
var gens [maxCheck + 1]struct {
	once sync.Once
	ok   bool
	g    []byte
}

const maxCheck = 30

func (stdTables) Generator(n int) []byte {
	if n < 0 || n > maxCheck || !gens[n].ok {
		lookupPanic("generator polynomial for %d check bytes", n)
	}
	g := &gens[n]
	g.once.Do(func() { g.g = Field.Gen(n) })
	return g.g
}

func (stdTables) Field() *gf256.Field { return Field }

// bch returns data followed by the remainder of dividing
// data<<deg by the generator polynomial gen of degree deg.
func bch(data, gen uint32, deg int) uint32 {
	r := data << deg
	for i := 31 - deg; i >= 0; i-- {
		if r&(1<<(i+deg)) != 0 {
			r ^= gen << i
		}
	}
	return data<<deg | r
}

var (
	vbits [MaxVersion + 1]uint32 // version information
	fbits [4][8]uint16           // format information
)

func init() {
	for v := Version(7); v <= MaxVersion; v++ {
		vbits[v] = bch(uint32(v), 0x1f25, 12)
	}
	for l := L; l <= H; l++ {
		for mask := range fbits[l] {
			d := uint32(l.formatBits()<<3 | mask)
			fbits[l][mask] = uint16(bch(d, 0x537, 10) ^ 0x5412)
		}
	}
	for _, vb := range blocks[MinVersion:] {
		for _, b := range vb {
			gens[b.Check].ok = true
		}
	}
}

// Alignment pattern centre coordinates by version.
var alignment = [MaxVersion + 1][]int{
	1: nil,
	2: {6, 18},
	3: {6, 22},
	4: {6, 26},
	5: {6, 30},
	6: {6, 34},
	7: {6, 22, 38},
	8: {6, 24, 42},
	9: {6, 26, 46},
	10: {6, 28, 50},
	11: {6, 30, 54},
	12: {6, 32, 58},
	13: {6, 34, 62},
	14: {6, 26, 46, 66},
	15: {6, 26, 48, 70},
	16: {6, 26, 50, 74},
	17: {6, 30, 54, 78},
	18: {6, 30, 56, 82},
	19: {6, 30, 58, 86},
	20: {6, 34, 62, 90},
	21: {6, 28, 50, 72, 94},
	22: {6, 26, 50, 74, 98},
	23: {6, 30, 54, 78, 102},
	24: {6, 28, 54, 80, 106},
	25: {6, 32, 58, 84, 110},
	26: {6, 30, 58, 86, 114},
	27: {6, 34, 62, 90, 118},
	28: {6, 26, 50, 74, 98, 122},
	29: {6, 30, 54, 78, 102, 126},
	30: {6, 26, 52, 78, 104, 130},
	31: {6, 30, 56, 82, 108, 134},
	32: {6, 34, 60, 86, 112, 138},
	33: {6, 30, 58, 86, 114, 142},
	34: {6, 34, 62, 90, 118, 146},
	35: {6, 30, 54, 78, 102, 126, 150},
	36: {6, 24, 50, 76, 102, 128, 154},
	37: {6, 28, 54, 80, 106, 132, 158},
	38: {6, 32, 58, 84, 110, 136, 162},
	39: {6, 26, 54, 82, 110, 138, 166},
	40: {6, 30, 58, 86, 114, 142, 170},
}

// Character capacities by version, level and mode
// (numeric, alphanumeric, byte).
var capacity = [MaxVersion + 1][4][3]uint16{
	1: {{41, 25, 17}, {34, 20, 14}, {27, 16, 11}, {17, 10, 7}},
	2: {{77, 47, 32}, {63, 38, 26}, {48, 29, 20}, {34, 20, 14}},
	3: {{127, 77, 53}, {101, 61, 42}, {77, 47, 32}, {58, 35, 24}},
	4: {{187, 114, 78}, {149, 90, 62}, {111, 67, 46}, {82, 50, 34}},
	5: {{255, 154, 106}, {202, 122, 84}, {144, 87, 60}, {106, 64, 44}},
	6: {{322, 195, 134}, {255, 154, 106}, {178, 108, 74}, {139, 84, 58}},
	7: {{370, 224, 154}, {293, 178, 122}, {207, 125, 86}, {154, 93, 64}},
	8: {{461, 279, 192}, {365, 221, 152}, {259, 157, 108}, {202, 122, 84}},
	9: {{552, 335, 230}, {432, 262, 180}, {312, 189, 130}, {235, 143, 98}},
	10: {{652, 395, 271}, {513, 311, 213}, {364, 221, 151}, {288, 174, 119}},
	11: {{772, 468, 321}, {604, 366, 251}, {427, 259, 177}, {331, 200, 137}},
	12: {{883, 535, 367}, {691, 419, 287}, {489, 296, 203}, {374, 227, 155}},
	13: {{1022, 619, 425}, {796, 483, 331}, {580, 352, 241}, {427, 259, 177}},
	14: {{1101, 667, 458}, {871, 528, 362}, {621, 376, 258}, {468, 283, 194}},
	15: {{1250, 758, 520}, {991, 600, 412}, {703, 426, 292}, {530, 321, 220}},
	16: {{1408, 854, 586}, {1082, 656, 450}, {775, 470, 322}, {602, 365, 250}},
	17: {{1548, 938, 644}, {1212, 734, 504}, {876, 531, 364}, {674, 408, 280}},
	18: {{1725, 1046, 718}, {1346, 816, 560}, {948, 574, 394}, {746, 452, 310}},
	19: {{1903, 1153, 792}, {1500, 909, 624}, {1063, 644, 442}, {813, 493, 338}},
	20: {{2061, 1249, 858}, {1600, 970, 666}, {1159, 702, 482}, {919, 557, 382}},
	21: {{2232, 1352, 929}, {1708, 1035, 711}, {1224, 742, 509}, {969, 587, 403}},
	22: {{2409, 1460, 1003}, {1872, 1134, 779}, {1358, 823, 565}, {1056, 640, 439}},
	23: {{2620, 1588, 1091}, {2059, 1248, 857}, {1468, 890, 611}, {1108, 672, 461}},
	24: {{2812, 1704, 1171}, {2188, 1326, 911}, {1588, 963, 661}, {1228, 744, 511}},
	25: {{3057, 1853, 1273}, {2395, 1451, 997}, {1718, 1041, 715}, {1286, 779, 535}},
	26: {{3283, 1990, 1367}, {2544, 1542, 1059}, {1804, 1094, 751}, {1425, 864, 593}},
	27: {{3517, 2132, 1465}, {2701, 1637, 1125}, {1933, 1172, 805}, {1501, 910, 625}},
	28: {{3669, 2223, 1528}, {2857, 1732, 1190}, {2085, 1263, 868}, {1581, 958, 658}},
	29: {{3909, 2369, 1628}, {3035, 1839, 1264}, {2181, 1322, 908}, {1677, 1016, 698}},
	30: {{4158, 2520, 1732}, {3289, 1994, 1370}, {2358, 1429, 982}, {1782, 1080, 742}},
	31: {{4417, 2677, 1840}, {3486, 2113, 1452}, {2473, 1499, 1030}, {1897, 1150, 790}},
	32: {{4686, 2840, 1952}, {3693, 2238, 1538}, {2670, 1618, 1112}, {2022, 1226, 842}},
	33: {{4965, 3009, 2068}, {3909, 2369, 1628}, {2805, 1700, 1168}, {2157, 1307, 898}},
	34: {{5253, 3183, 2188}, {4134, 2506, 1722}, {2949, 1787, 1228}, {2301, 1394, 958}},
	35: {{5529, 3351, 2303}, {4343, 2632, 1809}, {3081, 1867, 1283}, {2361, 1431, 983}},
	36: {{5836, 3537, 2431}, {4588, 2780, 1911}, {3244, 1966, 1351}, {2524, 1530, 1051}},
	37: {{6153, 3729, 2563}, {4775, 2894, 1989}, {3417, 2071, 1423}, {2625, 1591, 1093}},
	38: {{6479, 3927, 2699}, {5039, 3054, 2099}, {3599, 2181, 1499}, {2735, 1658, 1139}},
	39: {{6743, 4087, 2809}, {5313, 3220, 2213}, {3791, 2298, 1579}, {2927, 1774, 1219}},
	40: {{7089, 4296, 2953}, {5596, 3391, 2331}, {3993, 2420, 1663}, {3057, 1852, 1273}},
}

// Error correction block layout by version and level: check bytes
// per block, number and data length of group 1 and group 2 blocks.
var blocks = [MaxVersion + 1][4]Blocks{
	1: {{7, 1, 19, 0, 0}, {10, 1, 16, 0, 0}, {13, 1, 13, 0, 0}, {17, 1, 9, 0, 0}},
	2: {{10, 1, 34, 0, 0}, {16, 1, 28, 0, 0}, {22, 1, 22, 0, 0}, {28, 1, 16, 0, 0}},
	3: {{15, 1, 55, 0, 0}, {26, 1, 44, 0, 0}, {18, 2, 17, 0, 0}, {22, 2, 13, 0, 0}},
	4: {{20, 1, 80, 0, 0}, {18, 2, 32, 0, 0}, {26, 2, 24, 0, 0}, {16, 4, 9, 0, 0}},
	5: {{26, 1, 108, 0, 0}, {24, 2, 43, 0, 0}, {18, 2, 15, 2, 16}, {22, 2, 11, 2, 12}},
	6: {{18, 2, 68, 0, 0}, {16, 4, 27, 0, 0}, {24, 4, 19, 0, 0}, {28, 4, 15, 0, 0}},
	7: {{20, 2, 78, 0, 0}, {18, 4, 31, 0, 0}, {18, 2, 14, 4, 15}, {26, 4, 13, 1, 14}},
	8: {{24, 2, 97, 0, 0}, {22, 2, 38, 2, 39}, {22, 4, 18, 2, 19}, {26, 4, 14, 2, 15}},
	9: {{30, 2, 116, 0, 0}, {22, 3, 36, 2, 37}, {20, 4, 16, 4, 17}, {24, 4, 12, 4, 13}},
	10: {{18, 2, 68, 2, 69}, {26, 4, 43, 1, 44}, {24, 6, 19, 2, 20}, {28, 6, 15, 2, 16}},
	11: {{20, 4, 81, 0, 0}, {30, 1, 50, 4, 51}, {28, 4, 22, 4, 23}, {24, 3, 12, 8, 13}},
	12: {{24, 2, 92, 2, 93}, {22, 6, 36, 2, 37}, {26, 4, 20, 6, 21}, {28, 7, 14, 4, 15}},
	13: {{26, 4, 107, 0, 0}, {22, 8, 37, 1, 38}, {24, 8, 20, 4, 21}, {22, 12, 11, 4, 12}},
	14: {{30, 3, 115, 1, 116}, {24, 4, 40, 5, 41}, {20, 11, 16, 5, 17}, {24, 11, 12, 5, 13}},
	15: {{22, 5, 87, 1, 88}, {24, 5, 41, 5, 42}, {30, 5, 24, 7, 25}, {24, 11, 12, 7, 13}},
	16: {{24, 5, 98, 1, 99}, {28, 7, 45, 3, 46}, {24, 15, 19, 2, 20}, {30, 3, 15, 13, 16}},
	17: {{28, 1, 107, 5, 108}, {28, 10, 46, 1, 47}, {28, 1, 22, 15, 23}, {28, 2, 14, 17, 15}},
	18: {{30, 5, 120, 1, 121}, {26, 9, 43, 4, 44}, {28, 17, 22, 1, 23}, {28, 2, 14, 19, 15}},
	19: {{28, 3, 113, 4, 114}, {26, 3, 44, 11, 45}, {26, 17, 21, 4, 22}, {26, 9, 13, 16, 14}},
	20: {{28, 3, 107, 5, 108}, {26, 3, 41, 13, 42}, {30, 15, 24, 5, 25}, {28, 15, 15, 10, 16}},
	21: {{28, 4, 116, 4, 117}, {26, 17, 42, 0, 0}, {28, 17, 22, 6, 23}, {30, 19, 16, 6, 17}},
	22: {{28, 2, 111, 7, 112}, {28, 17, 46, 0, 0}, {30, 7, 24, 16, 25}, {24, 34, 13, 0, 0}},
	23: {{30, 4, 121, 5, 122}, {28, 4, 47, 14, 48}, {30, 11, 24, 14, 25}, {30, 16, 15, 14, 16}},
	24: {{30, 6, 117, 4, 118}, {28, 6, 45, 14, 46}, {30, 11, 24, 16, 25}, {30, 30, 16, 2, 17}},
	25: {{26, 8, 106, 4, 107}, {28, 8, 47, 13, 48}, {30, 7, 24, 22, 25}, {30, 22, 15, 13, 16}},
	26: {{28, 10, 114, 2, 115}, {28, 19, 46, 4, 47}, {28, 28, 22, 6, 23}, {30, 33, 16, 4, 17}},
	27: {{30, 8, 122, 4, 123}, {28, 22, 45, 3, 46}, {30, 8, 23, 26, 24}, {30, 12, 15, 28, 16}},
	28: {{30, 3, 117, 10, 118}, {28, 3, 45, 23, 46}, {30, 4, 24, 31, 25}, {30, 11, 15, 31, 16}},
	29: {{30, 7, 116, 7, 117}, {28, 21, 45, 7, 46}, {30, 1, 23, 37, 24}, {30, 19, 15, 26, 16}},
	30: {{30, 5, 115, 10, 116}, {28, 19, 47, 10, 48}, {30, 15, 24, 25, 25}, {30, 23, 15, 25, 16}},
	31: {{30, 13, 115, 3, 116}, {28, 2, 46, 29, 47}, {30, 42, 24, 1, 25}, {30, 23, 15, 28, 16}},
	32: {{30, 17, 115, 0, 0}, {28, 10, 46, 23, 47}, {30, 10, 24, 35, 25}, {30, 19, 15, 35, 16}},
	33: {{30, 17, 115, 1, 116}, {28, 14, 46, 21, 47}, {30, 29, 24, 19, 25}, {30, 11, 15, 46, 16}},
	34: {{30, 13, 115, 6, 116}, {28, 14, 46, 23, 47}, {30, 44, 24, 7, 25}, {30, 59, 16, 1, 17}},
	35: {{30, 12, 121, 7, 122}, {28, 12, 47, 26, 48}, {30, 39, 24, 14, 25}, {30, 22, 15, 41, 16}},
	36: {{30, 6, 121, 14, 122}, {28, 6, 47, 34, 48}, {30, 46, 24, 10, 25}, {30, 2, 15, 64, 16}},
	37: {{30, 17, 122, 4, 123}, {28, 29, 46, 14, 47}, {30, 49, 24, 10, 25}, {30, 24, 15, 46, 16}},
	38: {{30, 4, 122, 18, 123}, {28, 13, 46, 32, 47}, {30, 48, 24, 14, 25}, {30, 42, 15, 32, 16}},
	39: {{30, 20, 117, 4, 118}, {28, 40, 47, 7, 48}, {30, 43, 24, 22, 25}, {30, 10, 15, 67, 16}},
	40: {{30, 19, 118, 6, 119}, {28, 18, 47, 31, 48}, {30, 34, 24, 34, 25}, {30, 20, 15, 61, 16}},
}
