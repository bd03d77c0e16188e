package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kite/ecs"
)

type StorageInfo struct {
	ID    ecs.ComponentID
	Type  reflect.Type
	Name  string
	Count int
}

type StorageViewerCache struct {
	storages      []StorageInfo
	sortColumn    int
	sortAscending bool
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache: &StorageViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
	}
}

// Render draws one row per component storage. Clicking a row returns its type
// so the entity browser can be filtered by it; otherwise it returns nil.
func (sv *StorageViewerComponent) Render(w *ecs.World) reflect.Type {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.refresh(w)

	maxCount := 0
	for _, st := range sv.cache.storages {
		maxCount = max(maxCount, st.Count)
	}

	var clicked reflect.Type

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StorageTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortStorages()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, st := range sv.cache.storages {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedType == st.Type
			if imgui.SelectableBoolV(fmt.Sprintf("%d", st.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if isSelected {
					sv.selectedType = nil
				} else {
					sv.selectedType = st.Type
				}
				clicked = st.Type
			}

			imgui.TableNextColumn()
			imgui.Text(st.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.Count))

			if maxCount > 0 {
				barWidth := float32(st.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// SelectedType returns the storage type picked in the table, or nil.
func (sv *StorageViewerComponent) SelectedType() reflect.Type {
	return sv.selectedType
}

// refresh reloads the counts from the world stats. Storages are cheap to
// enumerate, so there is no invalidation.
func (sv *StorageViewerComponent) refresh(w *ecs.World) {
	stats := w.CollectStats()

	sv.cache.storages = sv.cache.storages[:0]
	for _, st := range stats.Storages {
		sv.cache.storages = append(sv.cache.storages, StorageInfo{
			ID:    st.ID,
			Type:  st.Type,
			Name:  st.Type.String(),
			Count: st.Count,
		})
	}

	sv.sortStorages()
}

func (sv *StorageViewerComponent) sortStorages() {
	slices.SortStableFunc(sv.cache.storages, func(a, b StorageInfo) int {
		var c int
		switch sv.cache.sortColumn {
		case 0:
			c = cmp.Compare(a.ID, b.ID)
		case 1:
			c = strings.Compare(a.Name, b.Name)
		default:
			c = cmp.Compare(a.Count, b.Count)
		}

		if !sv.cache.sortAscending {
			return -c
		}
		return c
	})
}
