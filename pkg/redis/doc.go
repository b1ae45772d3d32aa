// Package redis connects to Redis with retries and exposes a readiness check.
// The dashboard uses it as the shared session store when running more than
// one replica.
package redis
