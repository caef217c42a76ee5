// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

func TestShow_MakesBannerVisible(t *testing.T) {
	b := NewBanners()

	cmd := b.Show(BannerStandard, "+10 XP")
	if cmd == nil {
		t.Fatal("Show should schedule a hide timer")
	}
	if !b.Visible(BannerStandard) {
		t.Error("banner should be visible after Show")
	}
	if b.Text(BannerStandard) != "+10 XP" {
		t.Errorf("text = %q", b.Text(BannerStandard))
	}
}

func TestHideMsg_RemovesBanner(t *testing.T) {
	b := NewBanners()
	b.Show(BannerStandard, "+10 XP")

	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 1})
	if b.Visible(BannerStandard) {
		t.Error("banner should hide on matching hide message")
	}
	if b.Text(BannerStandard) != "" {
		t.Error("hidden banner should have empty text")
	}
}

func TestReplacement_IgnoresStaleHideTimer(t *testing.T) {
	b := NewBanners()

	// First banner's timer is already in flight when the second replaces it.
	b.Show(BannerStandard, "first")
	b.Show(BannerStandard, "second")

	// The first banner's hide fires; seq 1 is stale now.
	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 1})
	if !b.Visible(BannerStandard) {
		t.Error("replacement banner must survive the replaced banner's timer")
	}
	if b.Text(BannerStandard) != "second" {
		t.Errorf("text = %q, want %q", b.Text(BannerStandard), "second")
	}

	// The second banner's own timer hides it.
	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 2})
	if b.Visible(BannerStandard) {
		t.Error("banner should hide on its own timer")
	}
}

func TestKindsAreIndependent(t *testing.T) {
	b := NewBanners()

	b.Show(BannerStandard, "+10 XP")
	b.Show(BannerLevelUp, "Level 3!")

	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 1})
	if b.Visible(BannerStandard) {
		t.Error("standard banner should be hidden")
	}
	if !b.Visible(BannerLevelUp) {
		t.Error("level-up banner must not be affected by the standard slot")
	}
}

func TestLevelUp_FadeThenHide(t *testing.T) {
	b := NewBanners()
	b.Show(BannerLevelUp, "Level 2!")

	b.Update(BannerFadeMsg{Owner: b.id, Kind: BannerLevelUp, Seq: 1})
	if !b.Visible(BannerLevelUp) {
		t.Error("fading banner is still visible")
	}
	if !b.slots[BannerLevelUp].fading {
		t.Error("banner should be marked fading")
	}

	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerLevelUp, Seq: 1})
	if b.Visible(BannerLevelUp) {
		t.Error("banner should hide after the hide timer")
	}
}

func TestReplacement_ClearsFade(t *testing.T) {
	b := NewBanners()
	b.Show(BannerLevelUp, "Level 2!")
	b.Update(BannerFadeMsg{Owner: b.id, Kind: BannerLevelUp, Seq: 1})

	// New level-up while the old one is mid fade.
	b.Show(BannerLevelUp, "Level 3!")
	if b.slots[BannerLevelUp].fading {
		t.Error("replacement should start fully visible")
	}

	// Old banner's fade and hide are both stale.
	b.Update(BannerFadeMsg{Owner: b.id, Kind: BannerLevelUp, Seq: 1})
	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerLevelUp, Seq: 1})
	if !b.Visible(BannerLevelUp) || b.slots[BannerLevelUp].fading {
		t.Error("stale fade/hide must not touch the replacement")
	}
}

func TestOtherInstanceTimers_Ignored(t *testing.T) {
	a := NewBanners()
	b := NewBanners()
	a.Show(BannerStandard, "view A notice")
	b.Show(BannerStandard, "view B notice")

	// B's hide timer lands while A's banner is up.
	a.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 1})
	if !a.Visible(BannerStandard) {
		t.Error("another view's timer hid this view's banner")
	}
}

func TestManualHide_InvalidatesPendingTimers(t *testing.T) {
	b := NewBanners()
	b.Show(BannerStandard, "notice")
	b.Hide(BannerStandard)

	if b.Visible(BannerStandard) {
		t.Error("Hide should remove the banner")
	}

	// A later Show must not be hidden by the first banner's timer.
	b.Show(BannerStandard, "again")
	b.Update(BannerHideMsg{Owner: b.id, Kind: BannerStandard, Seq: 1})
	if !b.Visible(BannerStandard) {
		t.Error("timer from before a manual hide must be stale")
	}
}
