package service

import "time"

const experiencePerLevel = 1000

// NextStreak は前回の学習日時から連続学習日数を計算します。日付は UTC の暦日で比較します。
//   - 初回または前日に学習していれば +1
//   - 同じ日なら変わらない
//   - 2日以上空いていれば 1 からやり直し
func NextStreak(prev *time.Time, now time.Time, current int) int {
	if prev == nil {
		return current + 1
	}
	today := calendarDay(now)
	last := calendarDay(*prev)

	switch {
	case !last.Before(today):
		// 同日 (時計のずれで未来日付になった場合も同日扱い)
		if current < 1 {
			return 1
		}
		return current
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

// LevelFor は経験値からレベルを返します。1000 ごとに 1 上がります。
func LevelFor(xp int64) int {
	if xp < 0 {
		return 1
	}
	return int(xp/experiencePerLevel) + 1
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
