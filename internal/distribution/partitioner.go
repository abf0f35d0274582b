package distribution

// Partition splits records into len(roster) contiguous groups. The first
// len(records)%len(roster) agents receive one extra record.
func Partition(records []Record, roster []string) ([]Group, error) {
	k := len(roster)
	if k == 0 {
		return nil, &Error{Kind: KindConfig, Message: "no agents available"}
	}

	n := len(records)
	base, remainder := n/k, n%k

	groups := make([]Group, k)
	start := 0
	for i, agent := range roster {
		size := base
		if i < remainder {
			size++
		}
		end := start + size
		// Capped so an append on one group cannot overwrite the next.
		slice := records[start:end:end]
		if slice == nil {
			slice = []Record{}
		}
		groups[i] = Group{AgentID: agent, Records: slice}
		start = end
	}
	return groups, nil
}
