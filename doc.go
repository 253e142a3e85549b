// Package cms is a native color-management engine. It parses binary ICC
// profiles (see the icc subpackage) and builds numeric pixel transforms that
// convert image data between device color spaces through the profile
// connection space.
//
// A Transform is built once from a pair of parsed profiles plus a Context
// and is then reused across any number of pixel buffers. Buffer operations
// are pure functions of their input and are safe to call concurrently as
// long as concurrent calls target disjoint destination buffers.
package cms
