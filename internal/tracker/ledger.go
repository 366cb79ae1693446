package tracker

// UpsertEntry 部分更新某 (日期, 习惯) 的打分记录：
// 传入 nil 的字段保持现值。此处不做打分截断，批量导入的数据原样存储；
// 截断逻辑归属 AdjustScore。
func (t *Tracker) UpsertEntry(date, habitID string, score *int, note *string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, hadEntry, hadDay := t.entrySnapshot(date, habitID)
	t.upsertEntryLocked(date, habitID, score, note)

	if err := t.saveEntries(); err != nil {
		t.restoreEntry(date, habitID, prev, hadEntry, hadDay)
		return err
	}
	return nil
}

func (t *Tracker) upsertEntryLocked(date, habitID string, score *int, note *string) {
	day, ok := t.entries[date]
	if !ok {
		day = make(map[string]Entry)
		t.entries[date] = day
	}

	current := day[habitID]
	if score != nil {
		current.Score = *score
	}
	if note != nil {
		current.Note = *note
	}
	day[habitID] = current
}

// EntryAt 返回某 (日期, 习惯) 的记录，从未写入过时返回零值 {0, ""}。
func (t *Tracker) EntryAt(date, habitID string) Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[date][habitID]
}

// AdjustScore 按增量调整打分并截断到 [ScoreMin, ScoreMax]。
func (t *Tracker) AdjustScore(date, habitID string, delta int) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, hadEntry, hadDay := t.entrySnapshot(date, habitID)
	next := clampScore(t.entries[date][habitID].Score + delta)
	t.upsertEntryLocked(date, habitID, &next, nil)

	if err := t.saveEntries(); err != nil {
		t.restoreEntry(date, habitID, prev, hadEntry, hadDay)
		return Entry{}, err
	}
	return t.entries[date][habitID], nil
}

func (t *Tracker) entrySnapshot(date, habitID string) (Entry, bool, bool) {
	day, hadDay := t.entries[date]
	if !hadDay {
		return Entry{}, false, false
	}
	entry, hadEntry := day[habitID]
	return entry, hadEntry, true
}

// restoreEntry 在写入失败后撤销本次变更，内存与快照保持一致。
func (t *Tracker) restoreEntry(date, habitID string, prev Entry, hadEntry, hadDay bool) {
	if !hadDay {
		delete(t.entries, date)
		return
	}
	if !hadEntry {
		delete(t.entries[date], habitID)
		return
	}
	t.entries[date][habitID] = prev
}

// DailyTotal 汇总某日所有习惯的打分，归档习惯同样计入。
func (t *Tracker) DailyTotal(date string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return dailyTotal(t.entries, date)
}

func dailyTotal(entries EntryMap, date string) int {
	total := 0
	for _, entry := range entries[date] {
		total += entry.Score
	}
	return total
}

// removeHabitEntries 移除某习惯在所有日期下的记录，调用方持锁。
func (t *Tracker) removeHabitEntries(habitID string) {
	for date, day := range t.entries {
		delete(day, habitID)
		if len(day) == 0 {
			delete(t.entries, date)
		}
	}
}
