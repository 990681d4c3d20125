//go:build windows

package webgpu

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// Every PReLU shader reads the same uniform block: the kernel geometry plus
// the element count, padded to 16 bytes.

// preluForwardShader computes y = x >= 0 ? x : a[c] * x.
const preluForwardShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> a: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    outer: u32,
    channels: u32,
    inner: u32,
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let v = x[idx];
        if (v < 0.0) {
            let c = (idx / params.inner) % params.channels;
            y[idx] = a[c] * v;
        } else {
            y[idx] = v;
        }
    }
}
`

// preluBackwardInputShader computes dx = x >= 0 ? g : a[c] * g.
const preluBackwardInputShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> g: array<f32>;
@group(0) @binding(2) var<storage, read> a: array<f32>;
@group(0) @binding(3) var<storage, read_write> dx: array<f32>;

struct Params {
    outer: u32,
    channels: u32,
    inner: u32,
    size: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        if (x[idx] < 0.0) {
            let c = (idx / params.inner) % params.channels;
            dx[idx] = a[c] * g[idx];
        } else {
            dx[idx] = g[idx];
        }
    }
}
`

// preluBackwardSlopeShader computes da[c] = sum of x*g over the negative
// elements of channel c. One invocation per channel walks the channel's
// elements in row order.
const preluBackwardSlopeShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> g: array<f32>;
@group(0) @binding(2) var<storage, read_write> da: array<f32>;

struct Params {
    outer: u32,
    channels: u32,
    inner: u32,
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let c = global_id.x;
    if (c >= params.channels) {
        return;
    }
    var acc: f32 = 0.0;
    for (var o: u32 = 0u; o < params.outer; o = o + 1u) {
        let base = (o * params.channels + c) * params.inner;
        for (var k: u32 = 0u; k < params.inner; k = k + 1u) {
            let v = x[base + k];
            if (v < 0.0) {
                acc = acc + v * g[base + k];
            }
        }
    }
    da[c] = acc;
}
`
