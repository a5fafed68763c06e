// Package serialization reads and writes trained networks in a flat binary format.
//
// The layout has no magic bytes and no version field:
//
//	int32 layer_count
//	repeat layer_count times:
//	    int32     neuron_count
//	    int32     input_count
//	    int32     activation_code
//	    float64   bias[neuron_count]
//	    float64   weights[neuron_count][input_count]   (row by row)
//
// Integers and floats use the host's native byte order, so files are only
// portable between machines of the same endianness. Floats are stored as
// their IEEE-754 bits and round-trip exactly.
//
// Example usage:
//
//	if err := serialization.Save(net, "model.bin"); err != nil {
//	    return err
//	}
//	loaded, err := serialization.Load("model.bin")
//	switch {
//	case errors.Is(err, serialization.ErrIO):
//	    // file missing or unreadable
//	case errors.Is(err, serialization.ErrCorruptData):
//	    // truncated or malformed contents
//	}
package serialization
