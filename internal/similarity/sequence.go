package similarity

// LongestCommonSubsequence returns the length of the longest ordered, not
// necessarily contiguous, run of elements shared by a and b.
func LongestCommonSubsequence(a, b []string) int {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0
	}

	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}
	return table[n][m]
}

// AdjacentPairMatches counts the consecutive pairs of correct that also
// appear, in the same order, as consecutive pairs somewhere in user.
func AdjacentPairMatches(user, correct []string) int {
	if len(user) < 2 || len(correct) < 2 {
		return 0
	}

	type pair struct{ first, second string }
	userPairs := make(map[pair]struct{}, len(user)-1)
	for i := 0; i < len(user)-1; i++ {
		userPairs[pair{user[i], user[i+1]}] = struct{}{}
	}

	matches := 0
	for i := 0; i < len(correct)-1; i++ {
		if _, ok := userPairs[pair{correct[i], correct[i+1]}]; ok {
			matches++
		}
	}
	return matches
}

// PositionalMatches counts indices where both sequences hold the same element.
func PositionalMatches(user, correct []string) int {
	matches := 0
	for i := 0; i < len(user) && i < len(correct); i++ {
		if user[i] == correct[i] {
			matches++
		}
	}
	return matches
}
