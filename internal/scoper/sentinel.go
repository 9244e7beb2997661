package scoper

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/model"
)

const (
	// InboundSentinel stands for the sensitive value the node received from
	// its producer of record.
	InboundSentinel = "sensitiveData_€"
	// OutboundSentinel stands for the sensitive value the node itself
	// produces.
	OutboundSentinel = "sensitiveData_₹"
)

// minSentinelLength is the shortest snippet that can hold a sentinel.
var minSentinelLength = min(len(InboundSentinel), len(OutboundSentinel))

// SentinelName derives the variable name of a flow value.
func SentinelName(number int, value string) string {
	sum := md5.Sum([]byte("sensitiveData_" + strconv.Itoa(number) + "_" + value))
	return "a" + hex.EncodeToString(sum[:])
}

// RewriteSentinels replaces both sentinels in every snippet of the content.
// The inbound sentinel is named after (number, passed), the outbound one
// after (number, id).
func RewriteSentinels(c *model.Content, number int, passed flow.Value, id int) {
	inbound := SentinelName(number, passed.String())
	outbound := SentinelName(number, strconv.Itoa(id))
	r := strings.NewReplacer(InboundSentinel, inbound, OutboundSentinel, outbound)

	for _, field := range model.AllFields {
		snippets := c.Get(field)
		for i, s := range snippets {
			if len(s) < minSentinelLength {
				continue
			}
			snippets[i] = r.Replace(s)
		}
	}
}
