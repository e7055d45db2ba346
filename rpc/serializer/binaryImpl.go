package serializer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tkrause/echocalc/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasText      byte = 1 << 0
	hasFirst     byte = 1 << 1
	hasSecond    byte = 1 << 2
	hasOperation byte = 1 << 3
	hasResult    byte = 1 << 4
	hasErr       byte = 1 << 5
	hasErrKind   byte = 1 << 6
	hasMeta      byte = 1 << 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(msg)
	result := make([]byte, totalSize)

	// Write message type
	result[0] = byte(msg.MsgType)

	// Initialize flags byte
	var flags byte = 0

	// Set position for writing
	pos := 2 // Start after MsgType and flags

	// Handle Text
	if msg.Text != "" {
		flags |= hasText
		textBytes := []byte(msg.Text)
		textLen := len(textBytes)

		// Write text length
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(textLen))
		pos += 4

		// Write text data
		copy(result[pos:pos+textLen], textBytes)
		pos += textLen
	}

	// Handle First
	if msg.First != 0 {
		flags |= hasFirst
		binary.BigEndian.PutUint64(result[pos:pos+8], math.Float64bits(msg.First))
		pos += 8
	}

	// Handle Second
	if msg.Second != 0 {
		flags |= hasSecond
		binary.BigEndian.PutUint64(result[pos:pos+8], math.Float64bits(msg.Second))
		pos += 8
	}

	// Handle Operation
	if msg.Operation != common.OpUnknown {
		flags |= hasOperation
		result[pos] = byte(msg.Operation)
		pos += 1
	}

	// Handle Result
	if msg.Result != 0 {
		flags |= hasResult
		binary.BigEndian.PutUint64(result[pos:pos+8], math.Float64bits(msg.Result))
		pos += 8
	}

	// Handle Err
	if msg.Err != "" {
		flags |= hasErr
		errBytes := []byte(msg.Err)
		errLen := len(errBytes)

		// Write error length
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(errLen))
		pos += 4

		// Write error data
		copy(result[pos:pos+errLen], errBytes)
		pos += errLen
	}

	// Handle ErrKind
	if msg.ErrKind != common.KindUnknown {
		flags |= hasErrKind
		result[pos] = byte(msg.ErrKind)
		pos += 1
	}

	// Handle Meta
	if msg.Meta != nil {
		flags |= hasMeta
		metaLen := len(msg.Meta)

		// Write meta length
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(metaLen))
		pos += 4

		// Write meta data
		if metaLen > 0 {
			copy(result[pos:pos+metaLen], msg.Meta)
			pos += metaLen
		}
	}

	// Set flags byte after knowing which fields are present
	result[1] = flags

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < 2 {
		return fmt.Errorf("data too short for message header")
	}

	// Read message type
	msg.MsgType = common.MessageType(data[0])

	// Read flags
	flags := data[1]

	// Initialize read position
	pos := 2

	// Read Text if present
	if flags&hasText != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for text length")
		}

		// Read text length
		textLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		if pos+int(textLen) > len(data) {
			return fmt.Errorf("data too short for text data")
		}

		// Read text data
		msg.Text = string(data[pos : pos+int(textLen)])
		pos += int(textLen)
	} else {
		msg.Text = ""
	}

	// Read First if present
	if flags&hasFirst != 0 {
		if pos+8 > len(data) {
			return fmt.Errorf("data too short for first operand")
		}

		msg.First = math.Float64frombits(binary.BigEndian.Uint64(data[pos : pos+8]))
		pos += 8
	} else {
		msg.First = 0
	}

	// Read Second if present
	if flags&hasSecond != 0 {
		if pos+8 > len(data) {
			return fmt.Errorf("data too short for second operand")
		}

		msg.Second = math.Float64frombits(binary.BigEndian.Uint64(data[pos : pos+8]))
		pos += 8
	} else {
		msg.Second = 0
	}

	// Read Operation if present
	if flags&hasOperation != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for operation")
		}

		msg.Operation = common.Operation(data[pos])
		pos += 1
	} else {
		msg.Operation = common.OpUnknown
	}

	// Read Result if present
	if flags&hasResult != 0 {
		if pos+8 > len(data) {
			return fmt.Errorf("data too short for result")
		}

		msg.Result = math.Float64frombits(binary.BigEndian.Uint64(data[pos : pos+8]))
		pos += 8
	} else {
		msg.Result = 0
	}

	// Read Err if present
	if flags&hasErr != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for error length")
		}

		// Read error length
		errLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		if pos+int(errLen) > len(data) {
			return fmt.Errorf("data too short for error data")
		}

		// Read error data
		msg.Err = string(data[pos : pos+int(errLen)])
		pos += int(errLen)
	} else {
		msg.Err = ""
	}

	// Read ErrKind if present
	if flags&hasErrKind != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for error kind")
		}

		msg.ErrKind = common.ErrorKind(data[pos])
		pos += 1
	} else {
		msg.ErrKind = common.KindUnknown
	}

	// Read Meta if present
	if flags&hasMeta != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for meta length")
		}

		// Read meta length
		metaLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		if pos+int(metaLen) > len(data) {
			return fmt.Errorf("data too short for meta data")
		}

		// Read meta data - reuse the buffer if possible
		if msg.Meta == nil || cap(msg.Meta) < int(metaLen) {
			msg.Meta = make([]byte, metaLen)
		} else {
			msg.Meta = msg.Meta[:metaLen]
		}

		if metaLen > 0 {
			copy(msg.Meta, data[pos:pos+int(metaLen)])
		}
		pos += int(metaLen)
	} else {
		msg.Meta = nil
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the exact serialized size of a message
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := 2 // MsgType + flags

	if msg.Text != "" {
		size += 4 + len(msg.Text)
	}
	if msg.First != 0 {
		size += 8
	}
	if msg.Second != 0 {
		size += 8
	}
	if msg.Operation != common.OpUnknown {
		size += 1
	}
	if msg.Result != 0 {
		size += 8
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.ErrKind != common.KindUnknown {
		size += 1
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}
