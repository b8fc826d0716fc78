package domain

import (
	"context"
	"fmt"
	"math/bits"
	"net/netip"

	"go4.org/netipx"

	"github.com/Flarenzy/subnetcalc/internal/ipv4"
)

const (
	MinSplitSubnets = 2
	MaxSplitSubnets = 256

	// Children smaller than /30 have no usable host range to report.
	maxChildBits = 30
)

type calculatorService struct{}

func NewCalculatorService() CalculatorService {
	return calculatorService{}
}

func (calculatorService) Describe(_ context.Context, input DescribeInput) (Calculation, error) {
	octets, err := ipv4.Validate(input.IP)
	if err != nil {
		return Calculation{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if input.Prefix < 0 || input.Prefix > 32 {
		return Calculation{}, fmt.Errorf("%w: prefix must be between 0 and 32", ErrInvalidInput)
	}

	return describe(octets.Addr(), input.Prefix), nil
}

func (calculatorService) Split(_ context.Context, input SplitInput) (SubnetPlan, error) {
	parent, err := netip.ParsePrefix(input.Network)
	if err != nil || !parent.Addr().Is4() {
		return SubnetPlan{}, fmt.Errorf("%w: network must be an IPv4 CIDR", ErrInvalidInput)
	}
	if input.Subnets < MinSplitSubnets || input.Subnets > MaxSplitSubnets {
		return SubnetPlan{}, fmt.Errorf("%w: subnets must be between %d and %d",
			ErrInvalidInput, MinSplitSubnets, MaxSplitSubnets)
	}

	parent = parent.Masked()
	count := nextPowerOfTwo(input.Subnets)
	childBits := parent.Bits() + bits.TrailingZeros(uint(count))
	if childBits > maxChildBits {
		return SubnetPlan{}, fmt.Errorf("%w: splitting %s into %d subnets needs /%d networks, smallest supported is /%d",
			ErrInvalidInput, parent, count, childBits, maxChildBits)
	}

	plan := SubnetPlan{
		Parent:    parent,
		Requested: input.Subnets,
		Count:     count,
		ChildBits: childBits,
		Subnets:   make([]Calculation, 0, count),
	}

	start := parent.Addr()
	for i := 0; i < count; i++ {
		child := describe(start, childBits)
		plan.Subnets = append(plan.Subnets, child)
		start = child.Broadcast.Next()
	}

	return plan, nil
}

func describe(addr netip.Addr, prefixBits int) Calculation {
	prefix := netip.PrefixFrom(addr, prefixBits).Masked()
	r := netipx.RangeOfPrefix(prefix)

	calc := Calculation{
		Addr:        addr,
		Prefix:      prefixBits,
		Class:       detectClass(addr),
		NetworkType: detectNetworkType(addr),
		Mask:        ipv4.Mask(prefixBits),
		Wildcard:    ipv4.Wildcard(prefixBits),
		Network:     prefix,
		Broadcast:   r.To(),
		TotalHosts:  totalHosts(prefixBits),
	}

	// /31 point-to-point pairs and /32 hosts have no traditional usable range.
	if prefixBits <= 30 {
		calc.UsableHosts = calc.TotalHosts - 2
	}
	if calc.UsableHosts > 0 {
		calc.HostMin = prefix.Addr().Next()
		calc.HostMax = calc.Broadcast.Prev()
	}

	return calc
}

func totalHosts(prefixBits int) uint64 {
	if prefixBits == 32 {
		return 1
	}
	return 1 << (32 - prefixBits)
}

func detectClass(addr netip.Addr) string {
	first := int(addr.As4()[0])
	switch {
	case first == 127:
		return "Loopback"
	case first >= 1 && first <= 126:
		return "Class A"
	case first >= 128 && first <= 191:
		return "Class B"
	case first >= 192 && first <= 223:
		return "Class C"
	case first >= 224 && first <= 239:
		return "Class D (Multicast)"
	case first >= 240 && first <= 254:
		return "Class E (Experimental)"
	default:
		return "Unknown"
	}
}

func detectNetworkType(addr netip.Addr) string {
	b := addr.As4()
	a, second := int(b[0]), int(b[1])

	switch {
	case a == 10:
		return "Private (10.0.0.0/8)"
	case a == 172 && second >= 16 && second <= 31:
		return "Private (172.16.0.0/12)"
	case a == 192 && second == 168:
		return "Private (192.168.0.0/16)"
	case a == 127:
		return "Loopback"
	case a == 169 && second == 254:
		return "Link-local (APIPA)"
	case a == 0:
		return "Software / Current network"
	case a >= 224 && a <= 239:
		return "Multicast"
	case a >= 240:
		return "Reserved / Experimental"
	default:
		return "Public"
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
