package serialization

import "encoding/binary"

// byteOrder is the byte order of every field in a model file.
var byteOrder = binary.NativeEndian

// maxInt32 is the largest count a model file can express.
const maxInt32 = 1<<31 - 1

// layerHeader is the fixed-size prefix of each layer record.
type layerHeader struct {
	Neurons    int32
	Inputs     int32
	Activation int32
}
