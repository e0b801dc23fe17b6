package browser

// snapshotScript walks the live DOM and returns it in the snapshot format.
// Boxes are converted to document coordinates using the current scroll.
const snapshotScript = `(() => {
  const sx = window.pageXOffset, sy = window.pageYOffset;
  const skip = new Set(['SCRIPT', 'STYLE', 'NOSCRIPT', 'TEMPLATE']);
  const walk = (el) => {
    const r = el.getBoundingClientRect();
    const cs = window.getComputedStyle(el);
    const node = {
      tag: el.tagName.toLowerCase(),
      x: r.left + sx,
      y: r.top + sy,
      width: r.width,
      height: r.height,
    };
    if (el.id) node.id = el.id;
    if (typeof el.className === 'string' && el.className) node['class'] = el.className;
    if (cs.backgroundColor && cs.backgroundColor !== 'rgba(0, 0, 0, 0)') node.background = cs.backgroundColor;
    const text = Array.from(el.childNodes)
      .filter((n) => n.nodeType === Node.TEXT_NODE)
      .map((n) => n.textContent.trim())
      .filter(Boolean)
      .join(' ');
    if (text) {
      node.text = text;
      node.color = cs.color;
    }
    if (el.scrollWidth) node.scroll_width = el.scrollWidth;
    if (el.scrollHeight) node.scroll_height = el.scrollHeight;
    const children = Array.from(el.children).filter((c) => !skip.has(c.tagName)).map(walk);
    if (children.length) node.children = children;
    return node;
  };
  return {
    url: location.href,
    window: {
      scroll_x: sx,
      scroll_y: sy,
      device_pixel_ratio: window.devicePixelRatio || 1,
      inner_width: window.innerWidth,
      inner_height: window.innerHeight,
    },
    root: walk(document.documentElement),
  };
})()`
