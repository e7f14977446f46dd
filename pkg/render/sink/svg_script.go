package sink

import (
	"fmt"
	"io"
)

const baseCSS = `
    .node { cursor: pointer; }
    .node rect { transition: stroke-width 0.15s ease; }
    .node.selected rect { stroke-width: 4; }
    .edge { pointer-events: none; }`

const popupJS = `
    const popup = document.getElementById('popup');
    const popupName = document.getElementById('popup-name');
    const popupLineage = document.getElementById('popup-lineage');
    function closePopup() {
      popup.setAttribute('visibility', 'hidden');
      document.querySelectorAll('.node.selected').forEach(n => n.classList.remove('selected'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('click', ev => {
        ev.stopPropagation();
        closePopup();
        el.classList.add('selected');
        popupName.textContent = el.dataset.label;
        popupLineage.textContent = el.dataset.lineage || '(root)';
        const vb = document.querySelector('svg').viewBox.baseVal;
        popup.setAttribute('transform', 'translate(' + (vb.width/2 - 140) + ',' + (vb.height/2 - 48) + ')');
        popup.setAttribute('visibility', 'visible');
      });
    });
    document.getElementById('popup-close').addEventListener('click', closePopup);
    document.querySelector('svg').addEventListener('click', closePopup);`

const panZoomJS = `
    const root = document.querySelector('svg');
    const vp = document.getElementById('viewport');
    const m = /translate\(([-\d.]+) ([-\d.]+)\)(?: scale\(([-\d.]+)\))?/.exec(vp.getAttribute('transform'));
    let tx = +m[1], ty = +m[2], zoom = m[3] ? +m[3] : 1;
    const apply = () => vp.setAttribute('transform', 'translate(' + tx + ' ' + ty + ') scale(' + zoom + ')');
    root.addEventListener('wheel', ev => {
      ev.preventDefault();
      const pt = root.createSVGPoint(); pt.x = ev.clientX; pt.y = ev.clientY;
      const p = pt.matrixTransform(root.getScreenCTM().inverse());
      const next = Math.min(%[2]g, Math.max(%[1]g, zoom * (ev.deltaY < 0 ? 1.1 : 1/1.1)));
      tx = p.x - (p.x - tx) * next / zoom; ty = p.y - (p.y - ty) * next / zoom; zoom = next;
      apply();
    }, { passive: false });
    let drag = null;
    root.addEventListener('pointerdown', ev => { drag = { x: ev.clientX - tx, y: ev.clientY - ty }; });
    root.addEventListener('pointermove', ev => { if (drag) { tx = ev.clientX - drag.x; ty = ev.clientY - drag.y; apply(); } });
    root.addEventListener('pointerup', () => { drag = null; });`

// Zoom limits match the interactive diagram's camera.
const (
	minZoom = 0.1
	maxZoom = 2.0
)

func renderStyle(w io.Writer) {
	fmt.Fprintf(w, "  <style>%s\n  </style>\n", baseCSS)
}

func renderScript(w io.Writer, r svgRenderer) {
	if !r.popups && !r.panZoom {
		return
	}
	fmt.Fprint(w, "  <script type=\"text/javascript\"><![CDATA[")
	if r.popups {
		fmt.Fprint(w, popupJS)
	}
	if r.panZoom {
		fmt.Fprintf(w, panZoomJS, minZoom, maxZoom)
	}
	fmt.Fprint(w, "\n  ]]></script>\n")
}
