// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor substrate the layer library runs on.
//
// # Overview
//
// A RawTensor is an N-dimensional array with a runtime precision tag
// (Float32 or Float64) and reference-counted storage:
//   - Clone returns a second handle sharing the same buffer
//   - Release drops a handle; storage is freed with the last one
//   - Data returns a typed zero-copy view
//
// # Basic Usage
//
//	x, err := tensor.FromSlice([]float32{-2, 0, 3, -1}, tensor.Shape{1, 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer x.Release()
//
//	for i, v := range tensor.Data[float32](x) {
//	    fmt.Println(i, v)
//	}
package tensor
