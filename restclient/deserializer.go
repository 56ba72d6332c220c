package restclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/kbukum/restkit/dynjson"
)

// Deserializer transforms raw response bytes into a typed result.
// Accept declares the Accept header value the request should carry.
// Any two-method implementation plugs into the generic pipeline.
type Deserializer[T any] interface {
	// Accept returns the Accept header value for this response type.
	Accept() string
	// Deserialize converts response bytes into T, or fails.
	Deserialize(data []byte) (T, error)
}

// Empty is the result type of the Void deserializer.
type Empty struct{}

type jsonDeserializer struct{}

// JSON returns a deserializer producing a dynamic dynjson.Value tree.
// Fails on bytes that are not a JSON object or array document.
func JSON() Deserializer[dynjson.Value] { return jsonDeserializer{} }

func (jsonDeserializer) Accept() string { return "application/json" }

func (jsonDeserializer) Deserialize(data []byte) (dynjson.Value, error) {
	return dynjson.Parse(data)
}

type typedDeserializer[T any] struct{}

// Typed returns a deserializer decoding the body into T via encoding/json.
// An empty body yields the zero value of T.
func Typed[T any]() Deserializer[T] { return typedDeserializer[T]{} }

func (typedDeserializer[T]) Accept() string { return "application/json" }

func (typedDeserializer[T]) Deserialize(data []byte) (T, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

type bytesDeserializer struct{}

// Bytes returns a deserializer that passes the body through unchanged.
// It cannot fail.
func Bytes() Deserializer[[]byte] { return bytesDeserializer{} }

func (bytesDeserializer) Accept() string { return "*/*" }

func (bytesDeserializer) Deserialize(data []byte) ([]byte, error) {
	return data, nil
}

type voidDeserializer struct{}

// Void returns a deserializer that discards the body. It always succeeds,
// making it the natural choice for calls where only the status matters.
func Void() Deserializer[Empty] { return voidDeserializer{} }

func (voidDeserializer) Accept() string { return "*/*" }

func (voidDeserializer) Deserialize([]byte) (Empty, error) {
	return Empty{}, nil
}

type imageDeserializer struct{}

// Image returns a deserializer decoding the body as an image.
// PNG, JPEG, and GIF are registered.
func Image() Deserializer[image.Image] { return imageDeserializer{} }

func (imageDeserializer) Accept() string { return "image/*" }

func (imageDeserializer) Deserialize(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
