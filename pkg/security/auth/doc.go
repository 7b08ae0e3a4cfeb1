// Package auth guards mutating HTTP endpoints with static API keys.
//
// Keys are read from configuration:
//
//	server:
//	  api_keys:
//	    - name: ops
//	      key: 3f1c...
//
// A request authenticates with either header:
//
//	Authorization: Bearer 3f1c...
//	X-API-Key: 3f1c...
//
// The matched key's name is available to handlers through Caller.
package auth
