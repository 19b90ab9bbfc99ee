package preprocess

import "errors"

var (
	// ErrImageDecode is returned when the input bytes are not a decodable
	// image. Fatal to the preprocessing call.
	ErrImageDecode = errors.New("cannot decode input image")

	// ErrCanvasAllocation is returned when the decoded image would need a
	// pixel buffer beyond the allocation budget. Fatal to the call.
	ErrCanvasAllocation = errors.New("pixel buffer allocation refused")
)
