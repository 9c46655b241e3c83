// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package qr

type mockEncoder struct {
	matrix *Matrix
	err    error

	calls      int
	lastText   string
	lastWidth  int
	lastHeight int
}

func (m *mockEncoder) Encode(text string, width, height int) (*Matrix, error) {
	m.calls++
	m.lastText = text
	m.lastWidth = width
	m.lastHeight = height
	if m.err != nil {
		return nil, m.err
	}
	if m.matrix != nil {
		return m.matrix, nil
	}
	return NewMatrix(width, height), nil
}

type mockRenderer struct {
	data []byte
	err  error

	calls      int
	lastMatrix *Matrix
}

func (m *mockRenderer) Render(matrix *Matrix) ([]byte, error) {
	m.calls++
	m.lastMatrix = matrix
	return m.data, m.err
}
