package redisx

const ns = "posrelay:v1"

// ChannelPOSUpdates is the broadcast topic every POS terminal subscribes
// to. The name is part of the wire contract and deliberately unprefixed.
func ChannelPOSUpdates() string {
	return "pos-updates"
}

func KeyFloorPlanSnapshot() string {
	return ns + ":floorplan:snapshot"
}

func KeyRateLimit(scope, id string) string {
	return ns + ":rl:" + scope + ":" + id
}
