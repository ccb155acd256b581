// Package feature assembles the fixed-order numeric vector the crop classifier
// consumes and coerces loosely typed request values into floats.
//
// The vector layout is [N, P, K, temperature, humidity, ph, rainfall]. N, P, K
// and ph come from the soil knowledge base, the rest from the request.
package feature
